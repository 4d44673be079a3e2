package bitmap

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	bmp "github.com/sergeymakinen/go-bmp"
)

// Decoder turns the pixel data of a BMP file into a Grid.
type Decoder interface {
	// Name identifies the decoder in log messages.
	Name() string
	// Decode reads the file at path, whose headers have already been
	// parsed into info.
	Decode(path string, info *Info) (Grid, error)
}

// DefaultDecoders returns the full decoder followed by the raw parser.
func DefaultDecoders() []Decoder {
	return []Decoder{ImageDecoder{}, RawDecoder{}}
}

// ImageDecoder decodes using a complete BMP codec and normalizes the result
// to 8-bit RGB, discarding any alpha.
type ImageDecoder struct{}

// Name implements Decoder.
func (ImageDecoder) Name() string {
	return "image"
}

// Decode implements Decoder.
func (ImageDecoder) Decode(path string, info *Info) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// The codec allocates the whole image from the header dimensions
	if err := info.checkSize(fi.Size()); err != nil {
		return nil, err
	}

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, err
	}

	// Always a non-premultiplied copy anchored at (0, 0)
	m := imaging.Clone(img)

	b := m.Bounds()
	if uint64(b.Dx()) != uint64(info.Width) || uint64(b.Dy()) != uint64(info.Height) {
		return nil, fmt.Errorf("bitmap: decoded %dx%d image does not match header %dx%d", b.Dx(), b.Dy(), info.Width, info.Height)
	}

	expand := func(c uint8) uint8 { return c }
	green := expand
	if info.BitsPerPixel == 16 {
		expand = expand5
		green = expand5
		if info.Compression == CompressionBitFields && info.GreenMask == 0x07e0 {
			green = expand6
		}
	}

	g := NewGrid(b.Dx(), b.Dy())
	for y, row := range g {
		p := m.Pix[y*m.Stride:]
		for x := range row {
			row[x] = RGB{expand(p[x*4+0]), green(p[x*4+1]), expand(p[x*4+2])}
		}
	}

	return g, nil
}

// expand5 rescales a 5-bit channel that the codec widened by shifting, which
// leaves full intensity at 248 rather than 255.
func expand5(c uint8) uint8 {
	return uint8(uint32(c>>3) * 255 / 31)
}

func expand6(c uint8) uint8 {
	return uint8(uint32(c>>2) * 255 / 63)
}
