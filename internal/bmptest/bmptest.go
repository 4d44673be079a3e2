// Package bmptest builds small BMP files for tests.
package bmptest

import (
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// Encode returns a BMP file with a BITMAPINFOHEADER and the pixel data
// immediately after it, at offset 54. rows holds the unpadded stored bytes
// of each row, top row first; rows are padded and written bottom up.
func Encode(width, height int, bpp uint16, rows [][]byte) []byte {
	stride := (width*int(bpp)/8 + 3) &^ 3

	b := make([]byte, 54, 54+stride*height)
	copy(b, "BM")
	binary.LittleEndian.PutUint32(b[2:], uint32(54+stride*height))
	binary.LittleEndian.PutUint32(b[10:], 54)
	binary.LittleEndian.PutUint32(b[14:], 40)
	binary.LittleEndian.PutUint32(b[18:], uint32(width))
	binary.LittleEndian.PutUint32(b[22:], uint32(height))
	binary.LittleEndian.PutUint16(b[26:], 1)
	binary.LittleEndian.PutUint16(b[28:], bpp)
	binary.LittleEndian.PutUint32(b[34:], uint32(stride*height))

	for y := len(rows) - 1; y >= 0; y-- {
		row := make([]byte, stride)
		copy(row, rows[y])
		b = append(b, row...)
	}

	return b
}

// BitFields returns a BMP like Encode but with compression set to
// BI_BITFIELDS and the three color masks stored between the headers and the
// pixel data, which then starts at offset 66.
func BitFields(width, height int, bpp uint16, masks [3]uint32, rows [][]byte) []byte {
	b := Encode(width, height, bpp, rows)

	m := make([]byte, 12)
	for i, v := range masks {
		binary.LittleEndian.PutUint32(m[i*4:], v)
	}

	out := append(append(append([]byte{}, b[:54]...), m...), b[54:]...)
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], 66)
	binary.LittleEndian.PutUint32(out[30:], 3)

	return out
}

// RGB24 returns a 24 bits per pixel BMP holding pixels, top row first.
func RGB24(pixels [][]color.RGBA) []byte {
	var width int
	if len(pixels) > 0 {
		width = len(pixels[0])
	}

	rows := make([][]byte, len(pixels))
	for y, p := range pixels {
		for _, c := range p {
			rows[y] = append(rows[y], c.B, c.G, c.R)
		}
	}

	return Encode(width, len(pixels), 24, rows)
}

// WriteFile writes b to name inside a temporary directory and returns the
// full path.
func WriteFile(tb testing.TB, name string, b []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}

	return path
}
