// Package normalize computes gain plans that bring a measured signal to
// a target level without pushing the true peak above a clipping ceiling.
//
// A Plan always states the gain that will actually be applied; when the
// ceiling forces a smaller gain than the target asks for, the plan is
// explicitly marked limited or the computation is rejected, depending on
// configuration. Nothing is adjusted silently.
package normalize

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audio/dsp/core"
	"github.com/cwbudde/algo-audio/dsp/pcm"
	"github.com/cwbudde/algo-audio/measure/loudness"
)

var (
	// ErrCeilingExceeded is returned in LimitModeReject when the requested
	// gain would push the projected peak above the ceiling. The returned
	// plan carries the capped gain so callers can decide to proceed.
	ErrCeilingExceeded = errors.New("normalize: projected peak exceeds ceiling")

	// ErrInvalidMeasurement is returned when planning from a loudness
	// result that holds no measurable loudness.
	ErrInvalidMeasurement = errors.New("normalize: loudness result is not valid")
)

// Plan is a computed normalization: the gain to apply and the evidence
// it was derived from.
type Plan struct {
	Target   float64 // requested level, dB
	Measured float64 // measured level, dB

	GainDB float64 // gain that will be applied, dB
	Gain   float64 // same gain as a linear multiplier

	ProjectedPeakDB float64 // true peak after applying GainDB
	CeilingDB       float64

	// Limited reports that GainDB was capped below target - measured
	// to keep the projected peak at the ceiling.
	Limited bool
}

// PlanLoudness computes a plan that brings the integrated loudness of a
// measured signal to targetLUFS, validated against the measured true peak.
func PlanLoudness(res loudness.Result, targetLUFS float64, opts ...Option) (Plan, error) {
	if !res.Valid {
		return Plan{}, ErrInvalidMeasurement
	}

	return makePlan(res.Integrated, res.TruePeakDB, targetLUFS, ApplyOptions(opts...))
}

// PlanPeak computes a plan that brings the peak level of a signal to
// targetDB. The measured peak doubles as the clipping reference.
func PlanPeak(peakDB, targetDB float64, opts ...Option) (Plan, error) {
	return makePlan(peakDB, peakDB, targetDB, ApplyOptions(opts...))
}

func makePlan(measured, peakDB, target float64, cfg Config) (Plan, error) {
	p := Plan{
		Target:    target,
		Measured:  measured,
		GainDB:    target - measured,
		CeilingDB: cfg.CeilingDB,
	}

	p.ProjectedPeakDB = peakDB + p.GainDB

	if p.ProjectedPeakDB > cfg.CeilingDB {
		// Cap so the projected peak lands exactly on the ceiling.
		p.GainDB -= p.ProjectedPeakDB - cfg.CeilingDB
		p.ProjectedPeakDB = cfg.CeilingDB
		p.Limited = true
	}

	p.Gain = core.DBToLinear(p.GainDB)

	if p.Limited && cfg.Mode == LimitModeReject {
		return p, fmt.Errorf("%w: %+.2f dB over at target %+.2f", ErrCeilingExceeded,
			peakDB+(target-measured)-cfg.CeilingDB, target)
	}

	return p, nil
}

// Apply returns a gained copy of buf according to the plan.
// The input buffer is never modified.
func Apply(buf *pcm.Buffer, p Plan) *pcm.Buffer {
	return buf.Scaled(p.Gain)
}

// ToMono downmixes buf to a single channel. Channel-count changes are a
// distinct transform, never folded into the gain computation.
func ToMono(buf *pcm.Buffer) *pcm.Buffer {
	return buf.Downmix()
}

// ToStereo duplicates a mono buffer into two identical channels.
func ToStereo(buf *pcm.Buffer) (*pcm.Buffer, error) {
	return buf.Duplicate(2)
}
