package waveform

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audio/dsp/core"
	"github.com/cwbudde/algo-audio/dsp/pcm"
)

var (
	// ErrEmptyBuffer is returned when the input buffer holds no samples.
	ErrEmptyBuffer = errors.New("waveform: buffer holds no samples")

	// ErrNoOnset is returned when auto-start detection finds no sustained
	// signal above the threshold.
	ErrNoOnset = errors.New("waveform: no onset above detection threshold")
)

// Column is one envelope column over an equal-width sample span.
type Column struct {
	Min float64
	Max float64
	RMS float64
}

// Annotation marks a point in time for downstream rendering.
// The analysis itself never consumes annotations.
type Annotation struct {
	Time  float64
	Label string
}

// Envelope is the downsampled amplitude envelope of a time range.
type Envelope struct {
	Columns []Column
	Scale   Scale

	// StartTime and EndTime are the analyzed range in seconds.
	StartTime float64
	EndTime   float64

	// DetectedStart is the onset found by auto-start detection;
	// StartDetected reports whether detection ran and succeeded.
	DetectedStart float64
	StartDetected bool

	// FloorDB is the floor used for decibel conversion.
	FloorDB float64
}

// ColumnDuration returns the time covered by one column in seconds.
func (e *Envelope) ColumnDuration() float64 {
	if len(e.Columns) == 0 {
		return 0
	}

	return (e.EndTime - e.StartTime) / float64(len(e.Columns))
}

// Converted returns a copy of the envelope in the requested scale.
// Converting decibel output back to linear yields magnitudes; the sign
// of Min values is not recoverable.
func (e *Envelope) Converted(scale Scale) *Envelope {
	out := &Envelope{
		Columns:       make([]Column, len(e.Columns)),
		Scale:         scale,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		DetectedStart: e.DetectedStart,
		StartDetected: e.StartDetected,
		FloorDB:       e.FloorDB,
	}

	if scale == e.Scale {
		copy(out.Columns, e.Columns)
		return out
	}

	for i, c := range e.Columns {
		if scale == ScaleDecibel {
			out.Columns[i] = Column{
				Min: core.AmplitudeToDB(c.Min, e.FloorDB),
				Max: core.AmplitudeToDB(c.Max, e.FloorDB),
				RMS: core.AmplitudeToDB(c.RMS, e.FloorDB),
			}
		} else {
			out.Columns[i] = Column{
				Min: core.DBToLinear(c.Min),
				Max: core.DBToLinear(c.Max),
				RMS: core.DBToLinear(c.RMS),
			}
		}
	}

	return out
}

// Analyze reduces buf (mixed to mono) to an envelope of the configured
// column count over the selected time range.
func Analyze(buf *pcm.Buffer, opts ...Option) (*Envelope, error) {
	cfg := ApplyOptions(opts...)

	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}

	if cfg.Columns <= 0 {
		return nil, fmt.Errorf("waveform: column count must be > 0: %d", cfg.Columns)
	}

	total := buf.Duration()

	start, end := 0.0, total

	if cfg.Range != nil {
		var err error

		start, end, err = cfg.Range.Resolve(total)
		if err != nil {
			return nil, err
		}
	}

	samples := buf.Mono()
	rate := buf.SampleRate()

	env := &Envelope{
		Scale:   cfg.Scale,
		FloorDB: cfg.FloorDB,
	}

	if cfg.AutoStart != nil {
		offset, ok := cfg.AutoStart.Detect(samples, rate)
		if !ok {
			return nil, ErrNoOnset
		}

		env.DetectedStart = offset
		env.StartDetected = true

		if cfg.AutoStart.Direction == FromEnd {
			if offset > start {
				end = offset
			}
		} else if offset < end {
			start = offset
		}
	}

	startFrame := int(start * float64(rate))

	endFrame := int(end * float64(rate))
	if endFrame > len(samples) {
		endFrame = len(samples)
	}

	if endFrame <= startFrame {
		return nil, fmt.Errorf("waveform: resolved range [%gs, %gs) is empty", start, end)
	}

	env.StartTime = start
	env.EndTime = end
	env.Columns = computeColumns(samples[startFrame:endFrame], cfg.Columns)

	if cfg.Scale == ScaleDecibel {
		for i, c := range env.Columns {
			env.Columns[i] = Column{
				Min: core.AmplitudeToDB(c.Min, cfg.FloorDB),
				Max: core.AmplitudeToDB(c.Max, cfg.FloorDB),
				RMS: core.AmplitudeToDB(c.RMS, cfg.FloorDB),
			}
		}
	}

	return env, nil
}

// computeColumns partitions samples into n equal-width spans and reduces
// each to min, max and RMS. Span boundaries are computed on the full
// length so rounding spreads evenly across columns.
func computeColumns(samples []float64, n int) []Column {
	if n > len(samples) {
		n = len(samples)
	}

	out := make([]Column, n)

	for i := range out {
		lo := i * len(samples) / n
		hi := (i + 1) * len(samples) / n

		span := samples[lo:hi]

		col := Column{Min: span[0], Max: span[0]}

		var sumSquares float64

		for _, v := range span {
			if v < col.Min {
				col.Min = v
			}

			if v > col.Max {
				col.Max = v
			}

			sumSquares += v * v
		}

		col.RMS = math.Sqrt(sumSquares / float64(len(span)))
		out[i] = col
	}

	return out
}
