package bitmap

import (
	"errors"
	"fmt"
	"io"
)

// FormatError reports that the input is not a BMP file.
type FormatError string

func (e FormatError) Error() string { return "bitmap: invalid format: " + string(e) }

// UnsupportedFormatError reports a valid BMP that uses a bit depth or
// compression method the decoder cannot handle.
type UnsupportedFormatError struct {
	BitsPerPixel uint16
	Compression  uint32
}

func (e *UnsupportedFormatError) Error() string {
	if e.Compression != CompressionRGB && e.Compression != CompressionBitFields {
		return fmt.Sprintf("bitmap: unsupported compression method %d", e.Compression)
	}
	return fmt.Sprintf("bitmap: unsupported bit depth %d", e.BitsPerPixel)
}

// ParseError reports that the header or pixel data could not be read.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "bitmap: parse failed: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errShortFile = errors.New("bitmap: not enough pixel data")
	errTooLarge  = errors.New("bitmap: image too large")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
