package bmp2array

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/bmp2array/array"
	"github.com/bodgit/bmp2array/bitmap"
	"github.com/bodgit/bmp2array/internal/bmptest"
	"github.com/bodgit/bmp2array/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	green = color.RGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.RGBA{0x00, 0x00, 0xff, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func quad(t *testing.T) string {
	t.Helper()
	return bmptest.WriteFile(t, "quad.bmp", bmptest.RGB24([][]color.RGBA{
		{red, green},
		{blue, white},
	}))
}

func outputIn(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "out.h")
}

func request(t *testing.T, input, output, format, order string) *Request {
	t.Helper()
	req, err := NewRequest(input, output, format, order)
	require.NoError(t, err)
	return req
}

func TestConvertGray8(t *testing.T) {
	output := outputIn(t)

	var messages []string
	res := New(nil).Convert(request(t, quad(t), output, "GRAY8", "little"), func(m string) {
		messages = append(messages, m)
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, KindNone, res.Kind)
	assert.Equal(t, "converted 2×2 image to "+output, res.Message)

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "const uint8_t image_2x2[4] = {\n    0x4C, 0x95, 0x1D, 0xFF\n};\n")

	require.NotEmpty(t, messages)
	assert.Equal(t, "detected 2×2 24-bit BMP, output format: GRAY8", messages[0])
	assert.Equal(t, "conversion complete", messages[len(messages)-1])
}

func TestConvertDefaults(t *testing.T) {
	output := outputIn(t)

	res := New(nil).Convert(request(t, quad(t), output, "", ""), nil)
	require.True(t, res.Success, res.Message)

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "// 字节顺序/byte-order: little-endian\n")
	assert.Contains(t, string(b), "0xF800, 0x07E0, 0x001F, 0xFFFF\n")
}

func TestConvert16Bit(t *testing.T) {
	input := bmptest.WriteFile(t, "16.bmp", bmptest.Encode(2, 1, 16, [][]byte{{0xff, 0x7f, 0x00, 0x00}}))
	output := outputIn(t)

	res := New(nil).Convert(request(t, input, output, "RGB565_8BIT", "big"), nil)
	require.True(t, res.Success, res.Message)

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "const unsigned char image_2x1[4] = {\n    0xFF,0xFF,0x00,0x00\n};\n")
}

func TestConvertForgedDimensions(t *testing.T) {
	b := bmptest.RGB24([][]color.RGBA{{red}})
	binary.LittleEndian.PutUint32(b[18:], 0x7fffffff)
	binary.LittleEndian.PutUint32(b[22:], 0x7fffffff)
	input := bmptest.WriteFile(t, "huge.bmp", b)
	output := outputIn(t)

	res := New(nil).Convert(request(t, input, output, "", ""), nil)
	assert.False(t, res.Success)
	assert.Equal(t, KindParse, res.Kind)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertEmptyImage(t *testing.T) {
	input := bmptest.WriteFile(t, "empty.bmp", bmptest.Encode(0, 3, 24, nil))
	output := outputIn(t)

	res := New(nil).Convert(request(t, input, output, "RGB332", ""), nil)
	require.True(t, res.Success, res.Message)

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(b), "const uint8_t image_0x3[0] = {\n};\n"))
}

type brokenDecoder struct {
	err error
}

func (brokenDecoder) Name() string {
	return "broken"
}

func (d brokenDecoder) Decode(string, *bitmap.Info) (bitmap.Grid, error) {
	return nil, d.err
}

func TestConvertFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	output := outputIn(t)
	c := New(logger, brokenDecoder{errors.New("no codec")}, bitmap.RawDecoder{})

	res := c.Convert(request(t, quad(t), output, "RGB332", ""), nil)
	require.True(t, res.Success, res.Message)
	assert.Contains(t, buf.String(), "The broken decoder failed")
	assert.Contains(t, buf.String(), "using the raw decoder")

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "0xE0, 0x1C, 0x03, 0xFF\n")
}

func TestConvertFailures(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	notBMP := bmptest.RGB24([][]color.RGBA{{red}})
	copy(notBMP, "XX")

	testCases := []struct {
		name     string
		input    func(*testing.T) string
		output   func(*testing.T) string
		decoders []bitmap.Decoder
		kind     ErrorKind
	}{
		{
			name:   "missing input",
			input:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.bmp") },
			output: outputIn,
			kind:   KindInvalidArgument,
		},
		{
			name:   "no output",
			input:  quad,
			output: func(*testing.T) string { return "" },
			kind:   KindInvalidArgument,
		},
		{
			name:   "bad signature",
			input:  func(t *testing.T) string { return bmptest.WriteFile(t, "bad.bmp", notBMP) },
			output: outputIn,
			kind:   KindFormat,
		},
		{
			name: "unsupported bit depth",
			input: func(t *testing.T) string {
				return bmptest.WriteFile(t, "4.bmp", bmptest.Encode(2, 2, 4, [][]byte{{0x12}, {0x34}}))
			},
			output: outputIn,
			kind:   KindUnsupported,
		},
		{
			name:     "every decoder fails",
			input:    quad,
			output:   outputIn,
			decoders: []bitmap.Decoder{brokenDecoder{errFirst}, brokenDecoder{errSecond}},
			kind:     KindParse,
		},
		{
			name:   "unwritable output",
			input:  quad,
			output: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing", "out.h") },
			kind:   KindIO,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := tc.output(t)
			res := New(nil, tc.decoders...).Convert(request(t, tc.input(t), output, "", ""), nil)

			assert.False(t, res.Success)
			assert.Equal(t, tc.kind, res.Kind)
			assert.Equal(t, res.Err.Error(), res.Message)

			if output != "" {
				_, err := os.Stat(output)
				assert.True(t, os.IsNotExist(err), "output should not be created")
			}
		})
	}
}

func TestConvertParseErrorKeepsCauses(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	c := New(nil, brokenDecoder{errFirst}, brokenDecoder{errSecond})
	res := c.Convert(request(t, quad(t), outputIn(t), "", ""), nil)

	var pe *bitmap.ParseError
	require.ErrorAs(t, res.Err, &pe)
	assert.ErrorIs(t, res.Err, errFirst)
	assert.ErrorIs(t, res.Err, errSecond)
}

func TestNewRequest(t *testing.T) {
	req := request(t, "in.bmp", "out.h", "rgb565_8bit", "BIG")
	assert.Equal(t, pixel.RGB565Split, req.Format)
	assert.Equal(t, pixel.BigEndian, req.ByteOrder)

	_, err := NewRequest("in.bmp", "out.h", "RGB888", "")
	var ae *InvalidArgumentError
	assert.ErrorAs(t, err, &ae)

	_, err = NewRequest("in.bmp", "out.h", "", "middle")
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestInfo(t *testing.T) {
	info, err := New(nil).Info(quad(t))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), info.Width)
	assert.Equal(t, uint16(24), info.BitsPerPixel)

	_, err = New(nil).Info(filepath.Join(t.TempDir(), "missing.bmp"))
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindNone},
		{bitmap.FormatError("x"), KindFormat},
		{&bitmap.UnsupportedFormatError{BitsPerPixel: 1}, KindUnsupported},
		{&bitmap.ParseError{Err: errors.New("x")}, KindParse},
		{&array.IOError{Err: errors.New("x")}, KindIO},
		{&InvalidArgumentError{Err: errors.New("x")}, KindInvalidArgument},
		{errors.New("x"), KindUnknown},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.kind, KindOf(tc.err))
	}

	assert.Equal(t, "I/O", KindIO.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
