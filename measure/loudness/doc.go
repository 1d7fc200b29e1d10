// Package loudness implements EBU R128 / ITU-R BS.1770 loudness analysis
// over a decoded PCM buffer.
//
// Analyze is a pure one-shot measurement: K-weighting per channel, gated
// integrated loudness over 400 ms blocks with 75% overlap, loudness range
// from 3 s short-term windows, and sample/true peak tracking. No state
// survives the call.
package loudness
