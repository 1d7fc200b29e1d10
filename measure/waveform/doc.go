// Package waveform reduces a decoded PCM buffer to a fixed-resolution
// amplitude envelope: per-column min, max and RMS over equal sample
// spans, in linear amplitude or decibels.
//
// The package also provides time-range selection with validation and
// auto-detection of the first (or last) sustained signal onset.
package waveform
