package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Info is the geometry and encoding of a BMP file as recorded in its
// headers.
type Info struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint16
	Compression  uint32
	// RedMask, GreenMask and BlueMask are only set for CompressionBitFields.
	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	FileSize  int64
}

// BytesPerPixel returns the whole number of bytes each stored pixel uses.
func (i *Info) BytesPerPixel() int {
	return int(i.BitsPerPixel) / 8
}

// RowStride returns the stored length of one row in bytes, including the
// padding up to a four byte boundary.
func (i *Info) RowStride() uint64 {
	n := uint64(i.Width) * uint64(i.BytesPerPixel())
	return (n + 3) &^ 3
}

// Padding returns the number of padding bytes after each stored row.
func (i *Info) Padding() uint64 {
	return i.RowStride() - uint64(i.Width)*uint64(i.BytesPerPixel())
}

// Pixels returns width multiplied by height.
func (i *Info) Pixels() uint64 {
	return uint64(i.Width) * uint64(i.Height)
}

// DecodeHeader reads the file header and BITMAPINFOHEADER from r. The
// returned Info has no FileSize.
func DecodeHeader(r io.Reader) (*Info, error) {
	var b [headerLen]byte

	n, err := io.ReadFull(r, b[:fileHeaderLen])
	if n < 2 || string(b[:2]) != "BM" {
		return nil, FormatError("not a BMP file")
	}
	if err != nil {
		return nil, &ParseError{Err: io.ErrUnexpectedEOF}
	}

	if err := readFull(r, b[fileHeaderLen:]); err != nil {
		return nil, &ParseError{Err: err}
	}

	dib := b[fileHeaderLen:]

	info := &Info{
		Width:        binary.LittleEndian.Uint32(dib[4:]),
		Height:       binary.LittleEndian.Uint32(dib[8:]),
		BitsPerPixel: binary.LittleEndian.Uint16(dib[14:]),
		Compression:  binary.LittleEndian.Uint32(dib[16:]),
	}

	if info.Compression == CompressionBitFields {
		var m [colorMasksLen]byte
		if err := readFull(r, m[:]); err != nil {
			return nil, &ParseError{Err: err}
		}
		info.RedMask = binary.LittleEndian.Uint32(m[0:])
		info.GreenMask = binary.LittleEndian.Uint32(m[4:])
		info.BlueMask = binary.LittleEndian.Uint32(m[8:])
	}

	return info, nil
}

// rows returns the number of stored rows. A negative height marks a top
// down image.
func (i *Info) rows() uint64 {
	if h := int32(i.Height); h < 0 {
		return uint64(-int64(h))
	}
	return uint64(i.Height)
}

// checkSize returns an error if an image with these headers could not fit
// in a file of the given size, or is too large to decode at all.
func (i *Info) checkSize(size int64) error {
	pixels := uint64(i.Width) * i.rows()
	if pixels > maxPixels {
		return fmt.Errorf("%w: %dx%d", errTooLarge, i.Width, i.rows())
	}

	// Compressed data has no fixed size
	if i.Compression != CompressionRGB && i.Compression != CompressionBitFields {
		return nil
	}

	stride := (uint64(i.Width)*uint64(i.BitsPerPixel) + 31) / 32 * 4
	if need := uint64(headerLen) + stride*i.rows(); uint64(size) < need {
		return fmt.Errorf("%w: need %d bytes, file has %d", errShortFile, need, size)
	}

	return nil
}

// ReadHeader opens the named file and decodes its headers, filling in the
// size of the file.
func ReadHeader(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer f.Close()

	info, err := DecodeHeader(f)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	info.FileSize = fi.Size()

	return info, nil
}
