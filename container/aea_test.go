package container

import (
	"errors"
	"testing"

	"github.com/nimrav/atrac1"
)

func TestCreateParse_RoundTrips(t *testing.T) {
	buf, err := Create("Test Title", 123, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	h, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Title != "Test Title" {
		t.Errorf("Title = %q, want %q", h.Title, "Test Title")
	}
	if h.FrameCount != 123 {
		t.Errorf("FrameCount = %d, want 123", h.FrameCount)
	}
	if h.ChannelCount != 2 {
		t.Errorf("ChannelCount = %d, want 2", h.ChannelCount)
	}
}

func TestParse_CorruptedMagicFails(t *testing.T) {
	buf, err := Create("Test Title", 123, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	buf[0] = 0xFF

	_, err = Parse(&buf)
	if !errors.Is(err, atrac1.ErrInvalidMagic) {
		t.Errorf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestCreate_RejectsOverlongTitle(t *testing.T) {
	title := make([]byte, 256)
	for i := range title {
		title[i] = 'a'
	}
	_, err := Create(string(title), 0, 1)
	if !errors.Is(err, atrac1.ErrInvalidTitle) {
		t.Errorf("err = %v, want ErrInvalidTitle", err)
	}
}

func TestCreate_RejectsNonASCIITitle(t *testing.T) {
	_, err := Create("caf\xe9", 0, 1)
	if !errors.Is(err, atrac1.ErrInvalidTitle) {
		t.Errorf("err = %v, want ErrInvalidTitle", err)
	}
}

func TestHeaderSize_IsFixed(t *testing.T) {
	buf, err := Create("", 0, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(buf) != HeaderSize {
		t.Errorf("len(buf) = %d, want %d", len(buf), HeaderSize)
	}
}
