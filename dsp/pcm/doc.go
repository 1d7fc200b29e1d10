// Package pcm provides the decoded-audio buffer type shared by all
// analysis engines.
//
// A Buffer holds planar, normalized float64 samples together with the
// sample rate and channel count. Engines treat buffers as read-only:
// every transform returns a new Buffer and never writes through the
// channel slices of its input.
package pcm
