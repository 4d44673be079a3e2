/*
Package array implements an encoder that writes a grid of pixels as a C array
declaration suitable for compiling into firmware.

The output starts with a comment block describing the conversion, followed by
a single const array named after the image dimensions. Each pixel becomes one
element, or two byte elements for the split RGB565 format, written as fixed
width hexadecimal literals. Sixteen elements are written per line, or four
byte pairs for the split format.

Lines are filled by counting elements across the whole array, not per image
row, so a line may hold the end of one row and the start of the next. Images
whose width is not a multiple of the line length therefore wrap differently
from a converter that breaks lines at each row.
*/
package array

import (
	"fmt"

	"github.com/bodgit/bmp2array/bitmap"
	"github.com/bodgit/bmp2array/pixel"
)

const (
	indent        = "    "
	pixelsPerLine = 16
	pairsPerLine  = 4

	// Progress is reported every this many pixels
	progressInterval = 1000
)

// ProgressFunc receives human readable progress messages. It is purely
// advisory and may be called from any goroutine.
type ProgressFunc func(message string)

// IOError reports a failure writing the output.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "array: write failed: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

// Name returns the identifier used for the array of an image with the given
// dimensions.
func Name(info *bitmap.Info) string {
	return fmt.Sprintf("image_%dx%d", info.Width, info.Height)
}

// ElementCount returns the number of array elements needed to hold an image
// with the given dimensions in format f.
func ElementCount(info *bitmap.Info, f pixel.Format) uint64 {
	return info.Pixels() * uint64(f.ElementsPerPixel())
}
