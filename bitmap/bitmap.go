/*
Package bitmap implements reading Windows BMP files into a grid of 8-bit RGB
pixels.

A BMP file starts with a 14 byte file header; the "BM" signature, the file
size, two reserved words and the offset of the pixel data. It is followed by
a 40 byte BITMAPINFOHEADER holding the geometry, the number of bits per pixel
and the compression method. Rows are stored bottom to top, each padded to a
multiple of four bytes.

Two decoders are provided. ImageDecoder uses a full BMP codec and copes with
palettes, RLE compression and bit field encodings. RawDecoder walks the pixel
data itself and only understands uncompressed 8, 16, 24 and 32 bits per pixel;
8-bit pixel values are taken as gray levels, the palette is not consulted.
*/
package bitmap

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen
	colorMasksLen = 12

	// Larger images are refused rather than allocated
	maxPixels = 1 << 28
)

// Compression methods
const (
	CompressionRGB       = 0
	CompressionRLE8      = 1
	CompressionRLE4      = 2
	CompressionBitFields = 3
	CompressionJPEG      = 4
	CompressionPNG       = 5
)

// RGB is a single pixel with 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Grid is a slice of rows, top row first, each row holding one RGB per
// column.
type Grid [][]RGB

// NewGrid returns a zeroed grid of the given dimensions.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]RGB, width)
	}
	return g
}

// Width returns the number of pixels in each row.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}
