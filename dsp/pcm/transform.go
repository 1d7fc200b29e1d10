package pcm

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Mono returns a mixdown of all channels (arithmetic mean per frame).
// For a single-channel buffer the samples are copied, not shared.
func (b *Buffer) Mono() []float64 {
	frames := b.Frames()
	out := make([]float64, frames)

	if len(b.channels) == 1 {
		copy(out, b.channels[0])
		return out
	}

	for _, ch := range b.channels {
		vecmath.AddBlockInPlace(out, ch)
	}

	vecmath.ScaleBlock(out, out, 1/float64(len(b.channels)))

	return out
}

// SliceFrames returns a sub-buffer covering [start, end) in frames.
// The sample data is shared with the parent buffer.
func (b *Buffer) SliceFrames(start, end int) (*Buffer, error) {
	if start < 0 || end > b.Frames() || start >= end {
		return nil, fmt.Errorf("%w: frames [%d, %d) of %d", ErrInvalidTimeRange, start, end, b.Frames())
	}

	channels := make([][]float64, len(b.channels))
	for i, ch := range b.channels {
		channels[i] = ch[start:end]
	}

	return &Buffer{sampleRate: b.sampleRate, channels: channels}, nil
}

// Slice returns a sub-buffer covering [startSec, endSec) in seconds.
func (b *Buffer) Slice(startSec, endSec float64) (*Buffer, error) {
	if startSec < 0 || endSec > b.Duration() || startSec >= endSec {
		return nil, fmt.Errorf("%w: [%gs, %gs) of %gs", ErrInvalidTimeRange, startSec, endSec, b.Duration())
	}

	start := int(startSec * float64(b.sampleRate))

	end := int(endSec * float64(b.sampleRate))
	if end > b.Frames() {
		end = b.Frames()
	}

	return b.SliceFrames(start, end)
}

// Downmix returns a new single-channel buffer mixed from all channels.
// This is the explicit channel-count reduction used by normalization;
// it is never folded into a gain computation.
func (b *Buffer) Downmix() *Buffer {
	return &Buffer{sampleRate: b.sampleRate, channels: [][]float64{b.Mono()}}
}

// Duplicate returns a new buffer with the first channel copied to
// numChannels identical channels. The source must be mono.
func (b *Buffer) Duplicate(numChannels int) (*Buffer, error) {
	if len(b.channels) != 1 {
		return nil, fmt.Errorf("pcm: duplicate requires a mono source, have %d channels", len(b.channels))
	}

	if numChannels <= 0 {
		return nil, ErrNoChannels
	}

	channels := make([][]float64, numChannels)
	for i := range channels {
		channels[i] = make([]float64, b.Frames())
		copy(channels[i], b.channels[0])
	}

	return &Buffer{sampleRate: b.sampleRate, channels: channels}, nil
}

// Scaled returns a new buffer with every sample multiplied by gain.
func (b *Buffer) Scaled(gain float64) *Buffer {
	channels := make([][]float64, len(b.channels))
	for i, ch := range b.channels {
		channels[i] = make([]float64, len(ch))
		vecmath.ScaleBlock(channels[i], ch, gain)
	}

	return &Buffer{sampleRate: b.sampleRate, channels: channels}
}
