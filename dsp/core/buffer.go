package core

// CopyInto copies src into dst, truncating to the shorter of the two,
// and returns the number of elements copied.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])

	return n
}

// Zero clears buf in place.
func Zero(buf []float64) {
	clear(buf)
}
