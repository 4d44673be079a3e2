/*
Package pixel implements the packed pixel formats used by small display
controllers.

Every function takes a single 8-bit per channel color and reduces it to the
target bit depth using biased rounding, (value*max + 127) / 255, so that both
0 and 255 map exactly onto the ends of the output range.
*/
package pixel

import (
	"fmt"
	"strings"
)

// Format is an output pixel format.
type Format int

const (
	// RGB565 packs each pixel into a 16-bit value, 5 bits red, 6 bits
	// green and 5 bits blue.
	RGB565 Format = iota
	// RGB565Split is RGB565 emitted as two separate bytes per pixel.
	RGB565Split
	// RGB332 packs each pixel into a byte, 3 bits red, 3 bits green and
	// 2 bits blue.
	RGB332
	// Gray8 is an 8-bit luma value.
	Gray8
)

var formatNames = [...]string{
	RGB565:      "RGB565",
	RGB565Split: "RGB565_8BIT",
	RGB332:      "RGB332",
	Gray8:       "GRAY8",
}

// Formats returns every supported format in selector order.
func Formats() []Format {
	return []Format{RGB565, RGB565Split, RGB332, Gray8}
}

// ParseFormat returns the Format named by s. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, formatNames[f]) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("pixel: unknown format %q, must be one of %s", s, strings.Join(formatNames[:], ", "))
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ElementsPerPixel returns how many array elements a single pixel occupies.
func (f Format) ElementsPerPixel() int {
	if f == RGB565Split {
		return 2
	}
	return 1
}

// ElementDigits returns the number of hexadecimal digits of one element.
func (f Format) ElementDigits() int {
	if f == RGB565 {
		return 4
	}
	return 2
}

// CType returns the C element type used to declare an array of f.
func (f Format) CType() string {
	switch f {
	case RGB565:
		return "uint16_t"
	case RGB565Split:
		return "unsigned char"
	default:
		return "uint8_t"
	}
}

// Description returns a one line human readable summary of f.
func (f Format) Description() string {
	switch f {
	case RGB565:
		return "BMP to RGB565 array"
	case RGB565Split:
		return "BMP to RGB565 8-bit byte array"
	case RGB332:
		return "BMP to RGB332 array"
	case Gray8:
		return "BMP to 8-bit grayscale array"
	}
	return f.String()
}

// ByteOrder selects how a 16-bit value is laid out.
type ByteOrder int

const (
	// LittleEndian leaves packed values as computed.
	LittleEndian ByteOrder = iota
	// BigEndian swaps the two bytes of a packed 16-bit value.
	BigEndian
)

// ParseByteOrder accepts "little" or "big", case-insensitive.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(s) {
	case "little":
		return LittleEndian, nil
	case "big":
		return BigEndian, nil
	}
	return 0, fmt.Errorf("pixel: unknown byte order %q, must be little or big", s)
}

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

func scale(v uint8, limit uint32) uint32 {
	return (uint32(v)*limit + 127) / 255
}

// Swap16 exchanges the high and low bytes of v.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// PackRGB565 returns the color packed as 0bRRRRRGGGGGGBBBBB, byte swapped when
// order is BigEndian.
func PackRGB565(r, g, b uint8, order ByteOrder) uint16 {
	v := uint16(scale(r, 31)<<11 | scale(g, 63)<<5 | scale(b, 31))
	if order == BigEndian {
		v = Swap16(v)
	}
	return v
}

// RGB565Bytes returns the high and low bytes of PackRGB565(r, g, b, order), in
// that order. The order flag only affects the value being split; the high
// byte is always emitted first.
func RGB565Bytes(r, g, b uint8, order ByteOrder) (uint8, uint8) {
	v := PackRGB565(r, g, b, order)
	return uint8(v >> 8), uint8(v)
}

// PackRGB332 returns the color packed as 0bRRRGGGBB.
func PackRGB332(r, g, b uint8) uint8 {
	return uint8(scale(r, 7)<<5 | scale(g, 7)<<2 | scale(b, 3))
}

// PackGray8 returns the truncated BT.601 luma of the color.
func PackGray8(r, g, b uint8) uint8 {
	// The explicit conversions stop the compiler fusing multiply-adds
	y := float64(0.299*float64(r)) + float64(0.587*float64(g)) + float64(0.114*float64(b))
	switch {
	case y < 0:
		return 0
	case y > 255:
		return 255
	}
	return uint8(y)
}
