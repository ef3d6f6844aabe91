package streaming

import "testing"

func TestNeedsFlushFrame_ShortPaddingRequiresExtraFrame(t *testing.T) {
	if !NeedsFlushFrame(500) {
		t.Error("padding of 12 samples is well under CodecDelay, want true")
	}
}

func TestNeedsFlushFrame_FullPaddingDoesNotRequireExtraFrame(t *testing.T) {
	if NeedsFlushFrame(0) {
		t.Error("padding of 512 samples exceeds CodecDelay, want false")
	}
}

func TestDelayCompensator_DropsLeadingSamplesThenPassesThrough(t *testing.T) {
	c := NewDelayCompensator()

	var frame [512]float32
	for i := range frame {
		frame[i] = float32(i)
	}

	// First frame: entirely consumed by the 266-sample drop plus
	// buffered remainder, not yet a full output frame.
	c.Push(frame)
	if _, ok := c.Drain(); ok {
		t.Fatal("expected no drainable frame after only one push")
	}

	c.Push(frame)
	out, ok := c.Drain()
	if !ok {
		t.Fatal("expected a drainable frame after two pushes")
	}
	if out[0] != 266 {
		t.Errorf("out[0] = %v, want 266 (first retained sample after the drop)", out[0])
	}
}

func TestDelayCompensator_FlushReturnsRemainder(t *testing.T) {
	c := NewDelayCompensator()
	var frame [512]float32
	c.Push(frame)

	_, valid := c.Flush()
	if valid != 512-266 {
		t.Errorf("valid = %d, want %d", valid, 512-266)
	}
}
