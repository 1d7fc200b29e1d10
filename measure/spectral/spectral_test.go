package spectral

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audio/internal/testutil"
)

func TestAnalyze_FrameCountWithPadding(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 10000))

	sg, err := Analyze(buf, WithWindowSize(1024), WithOverlap(0.5))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// ceil(10000 / 512)
	if len(sg.Frames) != 20 {
		t.Errorf("got %d frames, want 20", len(sg.Frames))
	}

	if sg.HopSize != 512 {
		t.Errorf("got hop %d, want 512", sg.HopSize)
	}
}

func TestAnalyze_FrameCountWithoutPadding(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 10000))

	sg, err := Analyze(buf, WithWindowSize(1024), WithOverlap(0.5), WithoutPadding())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// floor((10000 - 1024) / 512) + 1
	if len(sg.Frames) != 18 {
		t.Errorf("got %d frames, want 18", len(sg.Frames))
	}
}

func TestAnalyze_PeakAtSineFrequency(t *testing.T) {
	// Bin-centered frequency: bin 100 of a 4096-point window at 48 kHz.
	const freq = 100 * 48000.0 / 4096

	buf := testutil.SineBuffer(freq, 48000, 1.0, 1)

	sg, err := Analyze(buf, WithoutPadding())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(sg.Frames) == 0 {
		t.Fatal("no frames produced")
	}

	bins := sg.Frames[0].Bins

	peakBin := 0
	for i, v := range bins {
		if v > bins[peakBin] {
			peakBin = i
		}
	}

	if peakBin != 100 {
		t.Errorf("peak at bin %d (%.1f Hz), want bin 100", peakBin, sg.BinFrequency(peakBin))
	}

	// Full-scale sine through a periodic Hann: |X|/N = (A/2) * 0.5.
	testutil.RequireNear(t, bins[peakBin], -12.04, 0.1)

	testutil.RequireNear(t, sg.BinFrequency(100), freq, 1e-9)
}

func TestAnalyze_SilenceHitsFloor(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 8192))

	sg, err := Analyze(buf, WithWindowSize(4096), WithFloor(-90))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for _, frame := range sg.Frames {
		for i, v := range frame.Bins {
			if v != -90 {
				t.Fatalf("bin %d: got %v, want floor -90", i, v)
			}
		}
	}
}

func TestAnalyze_FrequencyRange(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 8192))

	sg, err := Analyze(buf, WithFrequencyRange(1000, 2000))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// binHz = 48000/4096; lo = ceil(1000/binHz) = 86, hi = floor(2000/binHz)+1 = 171.
	if sg.FirstBin != 86 {
		t.Errorf("got first bin %d, want 86", sg.FirstBin)
	}

	if sg.NumBins() != 85 {
		t.Errorf("got %d bins, want 85", sg.NumBins())
	}

	if f := sg.BinFrequency(0); f < 1000 {
		t.Errorf("first retained bin at %.2f Hz, below requested minimum", f)
	}

	if f := sg.BinFrequency(sg.NumBins() - 1); f > 2000 {
		t.Errorf("last retained bin at %.2f Hz, above requested maximum", f)
	}
}

func TestAnalyze_ChannelSelection(t *testing.T) {
	sine := testutil.DeterministicSine(1000, 48000, 1.0, 8192)
	buf := testutil.StereoBuffer(48000, sine, make([]float64, 8192))

	right, err := Analyze(buf, WithChannel(1), WithoutPadding())
	if err != nil {
		t.Fatalf("right channel: %v", err)
	}

	for _, v := range right.Frames[0].Bins {
		if v != -120 {
			t.Fatalf("silent channel produced %v dB, want floor", v)
		}
	}

	if _, err := Analyze(buf, WithChannel(2)); err == nil {
		t.Error("expected error for out-of-range channel")
	}
}

func TestAnalyze_CenterTimes(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 48000))

	sg, err := Analyze(buf, WithWindowSize(4096), WithOverlap(0))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	testutil.RequireNear(t, sg.Frames[0].CenterTime, 2048.0/48000, 1e-12)
	testutil.RequireNear(t, sg.Frames[1].CenterTime, (4096+2048.0)/48000, 1e-12)
}

func TestAnalyze_Validation(t *testing.T) {
	buf := testutil.MonoBuffer(48000, make([]float64, 4096))

	cases := []struct {
		name string
		opts []Option
	}{
		{"window not power of two", []Option{WithWindowSize(1000)}},
		{"window zero", []Option{WithWindowSize(0)}},
		{"overlap one", []Option{WithOverlap(1)}},
		{"overlap negative", []Option{WithOverlap(-0.1)}},
		{"negative min freq", []Option{WithFrequencyRange(-10, 1000)}},
		{"max below min", []Option{WithFrequencyRange(2000, 1000)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Analyze(buf, tc.opts...); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	empty := testutil.MonoBuffer(48000, []float64{})
	if _, err := Analyze(empty); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
}

func TestAnalyze_PaddedTailMatchesExplicitZeros(t *testing.T) {
	noise := testutil.DeterministicNoise(3, 0.5, 6000)

	padded, err := Analyze(testutil.MonoBuffer(48000, noise),
		WithWindowSize(4096), WithOverlap(0))
	if err != nil {
		t.Fatalf("padded: %v", err)
	}

	// Extending the signal with literal zeros and dropping partials
	// must produce the same frames as the zero-padding path.
	extended := append(append([]float64(nil), noise...), make([]float64, 2*4096-6000)...)

	explicit, err := Analyze(testutil.MonoBuffer(48000, extended),
		WithWindowSize(4096), WithOverlap(0), WithoutPadding())
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}

	if len(padded.Frames) != 2 || len(explicit.Frames) != 2 {
		t.Fatalf("got %d padded and %d explicit frames, want 2 each",
			len(padded.Frames), len(explicit.Frames))
	}

	for i := range padded.Frames {
		testutil.RequireSliceNearlyEqual(t, padded.Frames[i].Bins, explicit.Frames[i].Bins, 0)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	buf := testutil.MonoBuffer(44100, testutil.DeterministicNoise(7, 0.5, 20000))

	a, err := Analyze(buf, WithWindowSize(2048))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	b, err := Analyze(buf, WithWindowSize(2048))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(a.Frames) != len(b.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(a.Frames), len(b.Frames))
	}

	for i := range a.Frames {
		testutil.RequireSliceNearlyEqual(t, a.Frames[i].Bins, b.Frames[i].Bins, 0)
	}
}
