package core

import "testing"

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 3)

	if n := CopyInto(dst, []float64{1, 2, 3, 4}); n != 3 {
		t.Errorf("got %d copied, want 3", n)
	}

	if dst[2] != 3 {
		t.Errorf("got %v", dst)
	}

	if n := CopyInto(dst, []float64{9}); n != 1 || dst[0] != 9 || dst[1] != 2 {
		t.Errorf("short source: n=%d, dst=%v", n, dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Errorf("index %d: got %v", i, v)
		}
	}

	Zero(nil) // must not panic
}
