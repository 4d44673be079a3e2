/*
Package bmp2array is a library for converting BMP images into C array
declarations, packing each pixel as RGB565, RGB332 or 8-bit gray so it can be
compiled directly into firmware for small displays.
*/
package bmp2array

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/bmp2array/bitmap"
	"github.com/bodgit/bmp2array/pixel"
)

// Converter runs conversions. It holds no per-conversion state so a single
// Converter may run several conversions concurrently.
type Converter struct {
	logger   *log.Logger
	decoders []bitmap.Decoder
}

// New returns a Converter that tries each decoder in turn until one
// succeeds. With no decoders it uses bitmap.DefaultDecoders. A nil logger
// discards all messages.
func New(logger *log.Logger, decoders ...bitmap.Decoder) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if len(decoders) == 0 {
		decoders = bitmap.DefaultDecoders()
	}
	return &Converter{
		logger:   logger,
		decoders: decoders,
	}
}

// Request describes a single conversion.
type Request struct {
	Input     string
	Output    string
	Format    pixel.Format
	ByteOrder pixel.ByteOrder
}

// NewRequest parses the format and byte order selectors. An empty selector
// picks the default of RGB565 and little-endian.
func NewRequest(input, output, format, byteOrder string) (*Request, error) {
	r := &Request{
		Input:     input,
		Output:    output,
		Format:    pixel.RGB565,
		ByteOrder: pixel.LittleEndian,
	}

	if format != "" {
		f, err := pixel.ParseFormat(format)
		if err != nil {
			return nil, &InvalidArgumentError{Err: err}
		}
		r.Format = f
	}

	if byteOrder != "" {
		o, err := pixel.ParseByteOrder(byteOrder)
		if err != nil {
			return nil, &InvalidArgumentError{Err: err}
		}
		r.ByteOrder = o
	}

	return r, nil
}

func checkInput(path string) error {
	if path == "" {
		return &InvalidArgumentError{Err: errors.New("no input file")}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &InvalidArgumentError{Err: fmt.Errorf("input file %q does not exist", path)}
		}
		return &InvalidArgumentError{Err: err}
	}
	return nil
}

func (r *Request) validate() error {
	if err := checkInput(r.Input); err != nil {
		return err
	}
	if r.Output == "" {
		return &InvalidArgumentError{Err: errors.New("no output file")}
	}
	return nil
}

// Result is the outcome of a conversion. On failure Kind classifies Err and
// Message is suitable for showing to a user.
type Result struct {
	Success bool
	Message string
	Kind    ErrorKind
	Err     error
}

func failure(err error) Result {
	return Result{
		Message: err.Error(),
		Kind:    KindOf(err),
		Err:     err,
	}
}

// Info returns the header information of the named BMP file.
func (c *Converter) Info(path string) (*bitmap.Info, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}
	return bitmap.ReadHeader(path)
}
