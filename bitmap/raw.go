package bitmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RawDecoder parses uncompressed pixel data directly. It assumes the pixel
// data immediately follows the 54 bytes of headers.
type RawDecoder struct{}

// Name implements Decoder.
func (RawDecoder) Name() string {
	return "raw"
}

type rawDecoder struct {
	r    *bufio.Reader
	info *Info
	grid Grid

	tmp []byte
}

func (d *rawDecoder) pixel(b []byte) RGB {
	switch d.info.BitsPerPixel {
	case 8:
		// Palette index taken as a gray level
		return RGB{b[0], b[0], b[0]}
	case 16:
		// Assume X1R5G5B5
		v := uint32(b[0]) | uint32(b[1])<<8
		return RGB{
			uint8((v >> 10 & 0x1f) * 255 / 31),
			uint8((v >> 5 & 0x1f) * 255 / 31),
			uint8((v & 0x1f) * 255 / 31),
		}
	default:
		// BGR or BGRA, alpha is dropped
		return RGB{b[2], b[1], b[0]}
	}
}

func (d *rawDecoder) decode() error {
	var (
		width  = int(d.info.Width)
		height = int(d.info.Height)
		bpp    = d.info.BytesPerPixel()
		pad    = int(d.info.Padding())
	)

	d.grid = NewGrid(width, height)
	d.tmp = make([]byte, width*bpp)

	// Rows are stored bottom to top
	for i := 0; i < height; i++ {
		if err := readFull(d.r, d.tmp); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}

		row := d.grid[height-1-i]
		for x := range row {
			row[x] = d.pixel(d.tmp[x*bpp:])
		}

		// Tolerate a missing final pad
		if _, err := d.r.Discard(pad); err != nil && i != height-1 {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	return nil
}

// Decode implements Decoder.
func (RawDecoder) Decode(path string, info *Info) (Grid, error) {
	switch info.BitsPerPixel {
	case 8, 16, 24, 32:
	default:
		return nil, &UnsupportedFormatError{BitsPerPixel: info.BitsPerPixel, Compression: info.Compression}
	}

	switch info.Compression {
	case CompressionRGB, CompressionBitFields:
	default:
		return nil, &UnsupportedFormatError{BitsPerPixel: info.BitsPerPixel, Compression: info.Compression}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// Check the file is big enough before allocating, a bogus height
	// would otherwise allocate a huge grid
	if info.Height > 0 {
		need := headerLen + info.RowStride()*uint64(info.Height-1) + uint64(info.Width)*uint64(info.BytesPerPixel())
		if uint64(fi.Size()) < need {
			return nil, fmt.Errorf("%w: need %d bytes, file has %d", errShortFile, need, fi.Size())
		}
	}

	if _, err := f.Seek(headerLen, io.SeekStart); err != nil {
		return nil, err
	}

	d := rawDecoder{
		r:    bufio.NewReader(f),
		info: info,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}

	return d.grid, nil
}
