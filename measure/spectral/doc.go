// Package spectral computes short-time Fourier transform spectrograms
// from a decoded PCM buffer.
//
// Each analysis window is tapered, transformed, and reduced to magnitude
// bins in dB re full scale with a configurable floor. The result is a
// structured time/frequency matrix; rendering it is a caller concern.
package spectral
