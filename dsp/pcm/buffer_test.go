package pcm

import (
	"errors"
	"math"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(0, [][]float64{{1}}); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := New(48000, nil); !errors.Is(err, ErrNoChannels) {
		t.Errorf("expected ErrNoChannels, got %v", err)
	}

	_, err := New(48000, [][]float64{{1, 2}, {1}})
	if !errors.Is(err, ErrChannelLengthMismatch) {
		t.Errorf("expected ErrChannelLengthMismatch, got %v", err)
	}
}

func TestInterleaved_RoundTrip(t *testing.T) {
	interleaved := []float64{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}

	buf, err := FromInterleaved(44100, 2, interleaved)
	if err != nil {
		t.Fatalf("FromInterleaved: %v", err)
	}

	if buf.Frames() != 3 || buf.NumChannels() != 2 {
		t.Fatalf("got %d frames, %d channels", buf.Frames(), buf.NumChannels())
	}

	got := buf.Interleaved()
	for i := range interleaved {
		if got[i] != interleaved[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], interleaved[i])
		}
	}
}

func TestFromInterleaved_LengthMismatch(t *testing.T) {
	if _, err := FromInterleaved(44100, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for odd interleaved length with 2 channels")
	}
}

func TestMono_Mixdown(t *testing.T) {
	buf, err := New(48000, [][]float64{{1, 0, -1}, {0, 1, -1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mono := buf.Mono()

	want := []float64{0.5, 0.5, -1}
	for i := range want {
		if math.Abs(mono[i]-want[i]) > 1e-15 {
			t.Errorf("index %d: got %v, want %v", i, mono[i], want[i])
		}
	}
}

func TestMono_CopiesSingleChannel(t *testing.T) {
	data := []float64{0.5, 0.25}

	buf, err := New(48000, [][]float64{data})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mono := buf.Mono()
	mono[0] = 99

	if buf.Channel(0)[0] != 0.5 {
		t.Error("Mono must not alias the underlying channel data")
	}
}

func TestSlice_Validation(t *testing.T) {
	buf, err := New(1000, [][]float64{make([]float64, 1000)}) // 1 second
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name       string
		start, end float64
	}{
		{"start after end", 0.5, 0.2},
		{"negative start", -0.1, 0.5},
		{"end past duration", 0.5, 1.5},
		{"entirely outside", 2.0, 3.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := buf.Slice(tc.start, tc.end); !errors.Is(err, ErrInvalidTimeRange) {
				t.Errorf("expected ErrInvalidTimeRange, got %v", err)
			}
		})
	}

	sub, err := buf.Slice(0.25, 0.75)
	if err != nil {
		t.Fatalf("valid slice: %v", err)
	}

	if sub.Frames() != 500 {
		t.Errorf("got %d frames, want 500", sub.Frames())
	}
}

func TestDownmixDuplicate(t *testing.T) {
	stereo, err := New(48000, [][]float64{{1, 1}, {0, 0}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	mono := stereo.Downmix()
	if mono.NumChannels() != 1 || mono.Channel(0)[0] != 0.5 {
		t.Errorf("downmix: got %d channels, first sample %v", mono.NumChannels(), mono.Channel(0)[0])
	}

	back, err := mono.Duplicate(2)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	if back.NumChannels() != 2 || back.Channel(1)[0] != 0.5 {
		t.Errorf("duplicate: got %d channels, right sample %v", back.NumChannels(), back.Channel(1)[0])
	}

	if _, err := stereo.Duplicate(2); err == nil {
		t.Error("expected error duplicating a non-mono buffer")
	}
}

func TestScaled_DoesNotMutateInput(t *testing.T) {
	buf, err := New(48000, [][]float64{{0.5, -0.5}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scaled := buf.Scaled(2)

	if buf.Channel(0)[0] != 0.5 {
		t.Error("Scaled must not modify the input buffer")
	}

	if scaled.Channel(0)[0] != 1 || scaled.Channel(0)[1] != -1 {
		t.Errorf("got %v", scaled.Channel(0))
	}
}
