// Package container implements the AEA file header: the 2048-byte
// envelope that wraps a stream of 212-byte ATRAC1 sound units.
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/nimrav/atrac1"
)

// HeaderSize is the fixed size of an AEA header.
const HeaderSize = 2048

// magic is the fixed 4-byte AEA signature.
var magic = [4]byte{0x00, 0x08, 0x00, 0x00}

const (
	titleOffset        = 4
	titleMaxLen        = 255
	titleFieldSize     = 256 // bytes 4..259 inclusive
	frameCountOffset   = 260
	channelCountOffset = 264
)

// AeaHeader is the parsed content of an AEA file header.
type AeaHeader struct {
	Title        string
	FrameCount   uint32
	ChannelCount uint8
}

// Create builds a 2048-byte AEA header. title must be ASCII and no
// longer than 255 bytes, or atrac1.ErrInvalidTitle is returned.
func Create(title string, frameCount uint32, channelCount uint8) ([HeaderSize]byte, error) {
	var out [HeaderSize]byte

	if len(title) > titleMaxLen {
		return out, fmt.Errorf("%w: title length %d exceeds %d bytes", atrac1.ErrInvalidTitle, len(title), titleMaxLen)
	}
	for i := 0; i < len(title); i++ {
		if title[i] > 0x7f {
			return out, fmt.Errorf("%w: title contains non-ASCII byte at index %d", atrac1.ErrInvalidTitle, i)
		}
	}

	copy(out[0:4], magic[:])
	copy(out[titleOffset:titleOffset+titleFieldSize], title)
	binary.LittleEndian.PutUint32(out[frameCountOffset:frameCountOffset+4], frameCount)
	out[channelCountOffset] = channelCount

	return out, nil
}

// Parse reads an AEA header. Returns atrac1.ErrInvalidMagic if buf's first four
// bytes don't match the AEA signature.
func Parse(buf *[HeaderSize]byte) (AeaHeader, error) {
	var h AeaHeader
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != magic[3] {
		return h, fmt.Errorf("%w: got %02x %02x %02x %02x", atrac1.ErrInvalidMagic, buf[0], buf[1], buf[2], buf[3])
	}

	titleBytes := buf[titleOffset : titleOffset+titleFieldSize]
	end := 0
	for end < len(titleBytes) && titleBytes[end] != 0 {
		end++
	}
	h.Title = string(titleBytes[:end])

	h.FrameCount = binary.LittleEndian.Uint32(buf[frameCountOffset : frameCountOffset+4])
	h.ChannelCount = buf[channelCountOffset]

	return h, nil
}
