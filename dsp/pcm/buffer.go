package pcm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChannels is returned when a buffer is constructed without channel data.
	ErrNoChannels = errors.New("pcm: buffer must have at least one channel")

	// ErrChannelLengthMismatch is returned when channels differ in sample count.
	ErrChannelLengthMismatch = errors.New("pcm: all channels must have the same length")

	// ErrInvalidTimeRange is returned for a range with start >= end or
	// endpoints outside the buffer duration.
	ErrInvalidTimeRange = errors.New("pcm: invalid time range")
)

// Buffer is an immutable decoded-audio buffer: planar normalized samples
// in [-1, 1] plus the sample rate that produced them.
type Buffer struct {
	sampleRate int
	channels   [][]float64
}

// New creates a Buffer from planar channel data. The Buffer takes ownership
// of the slices; callers must not modify them afterwards.
func New(sampleRate int, channels [][]float64) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("pcm: sample rate must be > 0: %d", sampleRate)
	}

	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLengthMismatch, i, len(ch), frames)
		}
	}

	return &Buffer{sampleRate: sampleRate, channels: channels}, nil
}

// FromInterleaved creates a Buffer from interleaved frame data.
// len(interleaved) must be a multiple of numChannels.
func FromInterleaved(sampleRate, numChannels int, interleaved []float64) (*Buffer, error) {
	if numChannels <= 0 {
		return nil, ErrNoChannels
	}

	if len(interleaved)%numChannels != 0 {
		return nil, fmt.Errorf("pcm: interleaved length %d is not a multiple of %d channels",
			len(interleaved), numChannels)
	}

	frames := len(interleaved) / numChannels

	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	for i := range frames {
		base := i * numChannels
		for ch := range channels {
			channels[ch][i] = interleaved[base+ch]
		}
	}

	return New(sampleRate, channels)
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int { return len(b.channels[0]) }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the sample data of one channel.
// The returned slice is shared with the buffer and must not be modified.
func (b *Buffer) Channel(i int) []float64 { return b.channels[i] }

// Interleaved returns the samples as a freshly allocated interleaved slice.
func (b *Buffer) Interleaved() []float64 {
	frames := b.Frames()
	numCh := len(b.channels)

	out := make([]float64, frames*numCh)
	for i := range frames {
		base := i * numCh
		for ch, data := range b.channels {
			out[base+ch] = data[i]
		}
	}

	return out
}
