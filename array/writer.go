package array

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/bmp2array/bitmap"
	"github.com/bodgit/bmp2array/pixel"
)

var errGridSize = errors.New("array: pixel grid does not match image dimensions")

type encoder struct {
	w        *bufio.Writer
	err      error
	format   pixel.Format
	order    pixel.ByteOrder
	progress ProgressFunc
}

func (e *encoder) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) report(format string, a ...interface{}) {
	if e.progress != nil {
		e.progress(fmt.Sprintf(format, a...))
	}
}

func (e *encoder) writeHeader(info *bitmap.Info) {
	e.printf("// %s\n", e.format.Description())
	e.printf("// 字节顺序/byte-order: %s-endian\n", e.order)
	e.printf("// original size: %d×%d, %d bits\n", info.Width, info.Height, info.BitsPerPixel)
	e.printf("// output format: %s\n", e.format)
	e.printf("const %s %s[%d] = {\n", e.format.CType(), Name(info), ElementCount(info, e.format))
}

func (e *encoder) writePixel(c bitmap.RGB) {
	switch e.format {
	case pixel.RGB565:
		e.printf("0x%04X", pixel.PackRGB565(c.R, c.G, c.B, e.order))
	case pixel.RGB565Split:
		hi, lo := pixel.RGB565Bytes(c.R, c.G, c.B, e.order)
		e.printf("0x%02X,0x%02X", hi, lo)
	case pixel.RGB332:
		e.printf("0x%02X", pixel.PackRGB332(c.R, c.G, c.B))
	case pixel.Gray8:
		e.printf("0x%02X", pixel.PackGray8(c.R, c.G, c.B))
	}
}

func (e *encoder) encode(g bitmap.Grid, info *bitmap.Info) error {
	e.writeHeader(info)

	perLine, sep := pixelsPerLine, " "
	if e.format == pixel.RGB565Split {
		perLine, sep = pairsPerLine, ""
	}

	total := info.Pixels()

	e.report("converting pixel data...")

	var n uint64
	for _, row := range g {
		if total == 0 {
			break
		}
		for _, c := range row {
			if n%uint64(perLine) == 0 {
				e.writeString(indent)
			}

			e.writePixel(c)
			n++

			switch {
			case n == total:
				e.writeString("\n")
			case n%uint64(perLine) == 0:
				e.writeString(",\n")
			default:
				e.writeString("," + sep)
			}

			if n%progressInterval == 0 {
				e.report("progress: %d%%", n*100/total)
			}
		}
		if e.err != nil {
			return e.err
		}
	}

	e.writeString("};\n")

	if e.err == nil {
		e.err = e.w.Flush()
	}
	if e.err != nil {
		return e.err
	}

	e.report("conversion complete")

	return nil
}

// Encode writes g to w as a C array of format f. The grid must be the
// decoded pixels of an image with the dimensions recorded in info; an
// image with no pixels produces an empty array. progress may be nil.
//
// A grid of the wrong size is a programming error and is returned as is,
// without an IOError, before anything is written. Every other error is an
// IOError.
func Encode(w io.Writer, g bitmap.Grid, info *bitmap.Info, f pixel.Format, order pixel.ByteOrder, progress ProgressFunc) error {
	if total := info.Pixels(); total > 0 {
		if uint64(g.Height()) != uint64(info.Height) || uint64(g.Width()) != uint64(info.Width) {
			return errGridSize
		}
	}

	e := encoder{
		w:        bufio.NewWriter(w),
		format:   f,
		order:    order,
		progress: progress,
	}

	if err := e.encode(g, info); err != nil {
		return &IOError{Err: err}
	}

	return nil
}
