// Package format models the closed set of encode target kinds and their
// parameter domains.
//
// Each kind carries only the parameters that apply to it: bit depth for
// PCM-style targets, bitrate for lossy targets. The package validates
// parameters; the actual encoding is performed by an external tool.
package format

import "fmt"

// Kind identifies an output format.
type Kind int

const (
	KindWAV Kind = iota
	KindFLAC
	KindMP3
)

// String returns the conventional lowercase name of the format.
func (k Kind) String() string {
	switch k {
	case KindWAV:
		return "wav"
	case KindFLAC:
		return "flac"
	case KindMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// Format is the closed variant over supported output format kinds.
// Only types in this package implement it.
type Format interface {
	Kind() Kind
	Extension() string
	Validate() error

	isFormat()
}

// WAV is an uncompressed PCM target.
type WAV struct {
	// BitDepth selects the sample format: 16 or 24.
	BitDepth int
}

func (WAV) isFormat()         {}
func (WAV) Kind() Kind        { return KindWAV }
func (WAV) Extension() string { return "wav" }

// Codec returns the PCM codec name for the configured bit depth.
func (f WAV) Codec() string {
	if f.BitDepth == 24 {
		return "pcm_s24le"
	}

	return "pcm_s16le"
}

// Validate checks the bit depth against the supported sample formats.
func (f WAV) Validate() error {
	if f.BitDepth != 16 && f.BitDepth != 24 {
		return fmt.Errorf("format: unsupported WAV bit depth: %d", f.BitDepth)
	}

	return nil
}

// FLAC is a lossless compressed target.
type FLAC struct {
	// CompressionLevel is the encoder effort in [0, 8].
	CompressionLevel int
}

func (FLAC) isFormat()         {}
func (FLAC) Kind() Kind        { return KindFLAC }
func (FLAC) Extension() string { return "flac" }

// Validate checks the compression level range.
func (f FLAC) Validate() error {
	if f.CompressionLevel < 0 || f.CompressionLevel > 8 {
		return fmt.Errorf("format: FLAC compression level must be in [0, 8]: %d", f.CompressionLevel)
	}

	return nil
}

// MP3 is a lossy compressed target.
type MP3 struct {
	// BitrateKbps is the constant bitrate in kbit/s.
	BitrateKbps int
}

func (MP3) isFormat()         {}
func (MP3) Kind() Kind        { return KindMP3 }
func (MP3) Extension() string { return "mp3" }

// Validate checks the bitrate against the usual encoder range.
func (f MP3) Validate() error {
	if f.BitrateKbps < 64 || f.BitrateKbps > 320 {
		return fmt.Errorf("format: MP3 bitrate must be in [64, 320] kbit/s: %d", f.BitrateKbps)
	}

	return nil
}
