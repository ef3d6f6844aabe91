package atrac1

import "fmt"

// EncoderOptions configures transient detection sensitivity per band.
// Lower thresholds select short blocks more readily.
type EncoderOptions struct {
	TransientThresholdLow  float64
	TransientThresholdMid  float64
	TransientThresholdHigh float64
}

// DefaultEncoderOptions returns the codec's default transient thresholds.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		TransientThresholdLow:  1.0,
		TransientThresholdMid:  1.5,
		TransientThresholdHigh: 2.0,
	}
}

func (o EncoderOptions) validate() error {
	if o.TransientThresholdLow < 0.01 || o.TransientThresholdLow > 2 {
		return fmt.Errorf("%w: TransientThresholdLow %v out of range [0.01, 2]", ErrInvalidOption, o.TransientThresholdLow)
	}
	if o.TransientThresholdMid < 0.01 || o.TransientThresholdMid > 3 {
		return fmt.Errorf("%w: TransientThresholdMid %v out of range [0.01, 3]", ErrInvalidOption, o.TransientThresholdMid)
	}
	if o.TransientThresholdHigh < 0.01 || o.TransientThresholdHigh > 4 {
		return fmt.Errorf("%w: TransientThresholdHigh %v out of range [0.01, 4]", ErrInvalidOption, o.TransientThresholdHigh)
	}
	return nil
}
