package waveform

import (
	"fmt"
	"strconv"
	"strings"
)

type timeSpecKind int

const (
	specSeconds timeSpecKind = iota
	specPercent
)

// TimeSpec is a point in time expressed either in absolute seconds or as
// a percentage of the total duration.
type TimeSpec struct {
	kind  timeSpecKind
	value float64
}

// Seconds returns a TimeSpec at an absolute offset.
func Seconds(s float64) TimeSpec {
	return TimeSpec{kind: specSeconds, value: s}
}

// Percent returns a TimeSpec at a fraction of the total duration.
// p is given in percent, e.g. 50 for the midpoint.
func Percent(p float64) TimeSpec {
	return TimeSpec{kind: specPercent, value: p / 100}
}

// MinutesSeconds returns a TimeSpec at m minutes plus s seconds.
func MinutesSeconds(m, s int) TimeSpec {
	return Seconds(float64(m)*60 + float64(s))
}

// ParseTimeSpec parses "12.5" (seconds), "1:30" (minutes:seconds) or
// "25%" (percentage of total duration).
func ParseTimeSpec(s string) (TimeSpec, error) {
	switch {
	case strings.HasSuffix(s, "%"):
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || p < 0 || p > 100 {
			return TimeSpec{}, fmt.Errorf("waveform: percentage must be in [0, 100]: %q", s)
		}

		return Percent(p), nil

	case strings.Contains(s, ":"):
		parts := strings.SplitN(s, ":", 2)

		m, errM := strconv.Atoi(parts[0])
		sec, errS := strconv.Atoi(parts[1])

		if errM != nil || errS != nil || m < 0 || sec < 0 || sec >= 60 {
			return TimeSpec{}, fmt.Errorf("waveform: time must be MM:SS with seconds < 60: %q", s)
		}

		return MinutesSeconds(m, sec), nil

	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return TimeSpec{}, fmt.Errorf("waveform: seconds must be a non-negative number: %q", s)
		}

		return Seconds(v), nil
	}
}

func (t TimeSpec) seconds(total float64) float64 {
	if t.kind == specPercent {
		return total * t.value
	}

	return t.value
}

// TimeRange selects [Start, End) of a buffer.
type TimeRange struct {
	Start TimeSpec
	End   TimeSpec
}

// FullRange covers the whole buffer.
func FullRange() TimeRange {
	return TimeRange{Start: Seconds(0), End: Percent(100)}
}

// Resolve converts the range endpoints to seconds and validates them
// against the total duration. Invalid ranges fail; they are never
// silently clamped.
func (r TimeRange) Resolve(totalDuration float64) (start, end float64, err error) {
	start = r.Start.seconds(totalDuration)
	end = r.End.seconds(totalDuration)

	switch {
	case start < 0:
		return 0, 0, fmt.Errorf("waveform: start time must be >= 0: %g", start)
	case start >= end:
		return 0, 0, fmt.Errorf("waveform: start time %g must be before end time %g", start, end)
	case end > totalDuration:
		return 0, 0, fmt.Errorf("waveform: end time %g exceeds duration %g", end, totalDuration)
	}

	return start, end, nil
}
