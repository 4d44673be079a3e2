package bmp2array

import (
	"errors"
	"fmt"
	"os"

	"github.com/bodgit/bmp2array/array"
	"github.com/bodgit/bmp2array/bitmap"
)

// extract tries each decoder in order. If the last decoder reports an
// unsupported format that error is returned as is, otherwise every failure
// is wrapped in a single ParseError.
func (c *Converter) extract(path string, info *bitmap.Info) (bitmap.Grid, error) {
	if info.Pixels() == 0 {
		return nil, nil
	}

	var errs []error
	for _, d := range c.decoders {
		g, err := d.Decode(path, info)
		if err == nil {
			c.logger.Printf("Decoded \"%s\" using the %s decoder\n", path, d.Name())
			return g, nil
		}
		c.logger.Printf("The %s decoder failed on \"%s\": %v\n", d.Name(), path, err)
		errs = append(errs, err)
	}

	var ue *bitmap.UnsupportedFormatError
	if last := errs[len(errs)-1]; errors.As(last, &ue) {
		return nil, last
	}

	return nil, &bitmap.ParseError{Err: errors.Join(errs...)}
}

func write(req *Request, g bitmap.Grid, info *bitmap.Info, progress array.ProgressFunc) (err error) {
	f, err := os.Create(req.Output)
	if err != nil {
		return &array.IOError{Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &array.IOError{Err: cerr}
		}
	}()

	return array.Encode(f, g, info, req.Format, req.ByteOrder, progress)
}

// Convert reads the BMP file named by req.Input and writes it as a C array to
// req.Output. progress may be nil. The output file is only created once the
// input has been decoded; a write failure leaves a partial output file
// behind.
func (c *Converter) Convert(req *Request, progress array.ProgressFunc) Result {
	if err := req.validate(); err != nil {
		return failure(err)
	}

	info, err := bitmap.ReadHeader(req.Input)
	if err != nil {
		return failure(err)
	}

	if progress != nil {
		progress(fmt.Sprintf("detected %d×%d %d-bit BMP, output format: %s", info.Width, info.Height, info.BitsPerPixel, req.Format))
	}

	g, err := c.extract(req.Input, info)
	if err != nil {
		return failure(err)
	}

	if err := write(req, g, info, progress); err != nil {
		return failure(err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("converted %d×%d image to %s", info.Width, info.Height, req.Output),
	}
}
