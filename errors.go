package bmp2array

import (
	"errors"

	"github.com/bodgit/bmp2array/array"
	"github.com/bodgit/bmp2array/bitmap"
)

// InvalidArgumentError reports a bad request, detected before the input is
// parsed.
type InvalidArgumentError struct {
	Err error
}

func (e *InvalidArgumentError) Error() string { return "invalid argument: " + e.Err.Error() }

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

// ErrorKind classifies why a conversion failed.
type ErrorKind int

// Error kinds
const (
	KindNone ErrorKind = iota
	KindFormat
	KindUnsupported
	KindParse
	KindIO
	KindInvalidArgument
	// KindUnknown covers anything else, such as a pixel grid that does not
	// match its header.
	KindUnknown
)

var kindNames = [...]string{
	KindNone:            "none",
	KindFormat:          "format",
	KindUnsupported:     "unsupported format",
	KindParse:           "parse",
	KindIO:              "I/O",
	KindInvalidArgument: "invalid argument",
	KindUnknown:         "unknown",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// KindOf returns the kind of err, KindNone if err is nil.
func KindOf(err error) ErrorKind {
	var (
		fe bitmap.FormatError
		ue *bitmap.UnsupportedFormatError
		pe *bitmap.ParseError
		ie *array.IOError
		ae *InvalidArgumentError
	)

	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &ae):
		return KindInvalidArgument
	case errors.As(err, &fe):
		return KindFormat
	case errors.As(err, &ue):
		return KindUnsupported
	case errors.As(err, &pe):
		return KindParse
	case errors.As(err, &ie):
		return KindIO
	}

	return KindUnknown
}
