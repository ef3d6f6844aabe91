package streaming

import "github.com/nimrav/atrac1"

// StereoEncoder owns one atrac1.Encoder per channel and interleaves
// their output into AEA unit order (L,R,L,R,...).
type StereoEncoder struct {
	left, right *atrac1.Encoder
}

// NewStereoEncoder constructs a StereoEncoder with independent left and
// right channel state, both using the same options.
func NewStereoEncoder(opts atrac1.EncoderOptions) (*StereoEncoder, error) {
	left, err := atrac1.NewEncoder(opts)
	if err != nil {
		return nil, err
	}
	right, err := atrac1.NewEncoder(opts)
	if err != nil {
		return nil, err
	}
	return &StereoEncoder{left: left, right: right}, nil
}

// EncodeFrame encodes one stereo frame, returning the left and right
// sound units in the order they belong in the AEA stream.
func (s *StereoEncoder) EncodeFrame(left, right [512]float32) (l, r atrac1.EncodedFrame) {
	return s.left.EncodeFrame(left), s.right.EncodeFrame(right)
}

// StereoDecoder owns one atrac1.Decoder per channel, the mirror of
// StereoEncoder.
type StereoDecoder struct {
	left, right *atrac1.Decoder
}

// NewStereoDecoder constructs a StereoDecoder with independent left and
// right channel state.
func NewStereoDecoder() (*StereoDecoder, error) {
	left, err := atrac1.NewDecoder()
	if err != nil {
		return nil, err
	}
	right, err := atrac1.NewDecoder()
	if err != nil {
		return nil, err
	}
	return &StereoDecoder{left: left, right: right}, nil
}

// DecodeFrame decodes one (left, right) pair of sound units back into
// stereo PCM.
func (s *StereoDecoder) DecodeFrame(left, right *atrac1.EncodedFrame) (l, r [512]float32) {
	return s.left.DecodeFrame(left), s.right.DecodeFrame(right)
}
