// Package atrac1 implements an ATRAC1-compatible perceptual audio codec:
// a fixed 512-sample-per-frame, two-stage QMF analysis/synthesis tree
// feeding per-band MDCT transforms, a Bark-scale psychoacoustic masking
// model, greedy rate-distortion bit allocation, and scalar quantization,
// serialized to and from fixed 212-byte sound units.
//
// # Basic usage
//
// Encoding converts 512-sample PCM frames into sound units one at a
// time, in order:
//
//	enc, err := atrac1.NewEncoder(atrac1.DefaultEncoderOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frame := enc.EncodeFrame(pcm)
//	buf := atrac1.SerializeFrame(&frame) // [atrac1.FrameBytes]byte
//
// Decoding mirrors this: deserialize a sound unit, then reconstruct its
// PCM frame.
//
//	dec, err := atrac1.NewDecoder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frame, err := atrac1.DeserializeFrame(buf[:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pcm := dec.DecodeFrame(&frame)
//
// Both Encoder and Decoder carry persistent overlap-add and filter delay
// state across calls and must see every frame of a stream, in order;
// they are not safe for concurrent use, and one channel of stereo audio
// needs its own instance of each. The container and streaming packages
// build on top of this core for whole-stream AEA encoding and PCM
// frame-boundary management.
package atrac1
