// Package streaming provides the frame-boundary plumbing around the
// atrac1 core: padding a stream's final short PCM frame up to 512
// samples, compensating for the codec's algorithmic delay on decode,
// and pairing two per-channel cores into a stereo encoder/decoder.
package streaming

import "github.com/nimrav/atrac1"

// NeedsFlushFrame reports whether, after zero-padding a stream's final
// short PCM frame (which held validSamples real samples) up to 512, an
// extra all-zero frame must still be emitted so the decoder can drain
// the codec's algorithmic delay.
func NeedsFlushFrame(validSamples int) bool {
	padding := 512 - validSamples
	return padding < atrac1.CodecDelay
}

// FrameReader pulls one 512-sample PCM frame at a time, returning
// io.EOF (or any other error) once exhausted. Implementations own their
// own buffering of a shorter final frame.
type FrameReader interface {
	ReadFrame() (pcm [512]float32, err error)
}

// FrameWriter accepts one 512-sample PCM frame at a time, in order.
type FrameWriter interface {
	WriteFrame(pcm [512]float32) error
}

// DelayCompensator drops the codec's algorithmic delay from the front
// of a decoded PCM stream, then passes samples through unchanged,
// rebuffering into 512-sample frames for the caller.
type DelayCompensator struct {
	toDrop  int
	pending []float32
}

// NewDelayCompensator constructs a DelayCompensator that drops the
// codec's CodecDelay leading samples.
func NewDelayCompensator() *DelayCompensator {
	return &DelayCompensator{toDrop: atrac1.CodecDelay}
}

// Push feeds one decoded frame through delay compensation, appending
// any samples it releases (after the drop count has been satisfied) to
// the compensator's internal pending buffer. Call Drain to pull
// complete 512-sample output frames from that buffer as they
// accumulate.
func (c *DelayCompensator) Push(pcm [512]float32) {
	start := 0
	if c.toDrop > 0 {
		drop := c.toDrop
		if drop > len(pcm) {
			drop = len(pcm)
		}
		c.toDrop -= drop
		start = drop
	}
	c.pending = append(c.pending, pcm[start:]...)
}

// Drain removes and returns one complete 512-sample frame from the
// compensator's pending buffer, or false if fewer than 512 samples are
// currently buffered.
func (c *DelayCompensator) Drain() (pcm [512]float32, ok bool) {
	if len(c.pending) < 512 {
		return pcm, false
	}
	copy(pcm[:], c.pending[:512])
	c.pending = c.pending[512:]
	return pcm, true
}

// Flush returns whatever remains in the pending buffer, zero-padded to
// a full 512-sample frame, along with the count of real trailing
// samples it held; callers with a known total sample count can use that
// count to trim the final frame's extra padding back out again.
func (c *DelayCompensator) Flush() (pcm [512]float32, validSamples int) {
	validSamples = len(c.pending)
	copy(pcm[:], c.pending)
	c.pending = nil
	return pcm, validSamples
}
