// Package biquad implements second-order IIR filter sections and cascades
// using the Direct Form II Transposed structure.
//
// A Section carries its own pair of delay registers, so per-channel
// filtering uses one Section per channel and never shares state.
package biquad
