package qrcode

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Mode is the data encoding used for a segment.
type Mode int

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	}
	return "unknown"
}

func (m Mode) indicator() uint32 {
	return [3]uint32{0b0001, 0b0010, 0b0100}[m]
}

// countBits returns the width of the character count field for version v.
func (m Mode) countBits(v int) int {
	class := 0
	switch {
	case v >= 27:
		class = 2
	case v >= 10:
		class = 1
	}
	return [3][3]int{
		{10, 12, 14},
		{9, 11, 13},
		{8, 16, 16},
	}[m][class]
}

const (
	alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
	eciIndicator      = 0b0111
	eciUTF8           = 26
)

// segment is the whole content in a single mode.
type segment struct {
	mode Mode
	data []byte
	eci  int
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphanumericChars, s[i]) < 0 {
			return false
		}
	}
	return true
}

// newSegment picks the most compact single mode for content. Text outside
// ISO-8859-1 is sent as UTF-8 behind an ECI designator, so content must be
// valid UTF-8.
func newSegment(content string) segment {
	switch {
	case isNumeric(content):
		return segment{mode: Numeric, data: []byte(content)}
	case isAlphanumeric(content):
		return segment{mode: Alphanumeric, data: []byte(content)}
	}
	if latin, err := charmap.ISO8859_1.NewEncoder().String(content); err == nil {
		return segment{mode: Byte, data: []byte(latin)}
	}
	return segment{mode: Byte, data: []byte(content), eci: eciUTF8}
}

// bitLen returns the encoded length of s in version v, headers included.
func (s segment) bitLen(v int) int {
	n := len(s.data)
	bits := 4 + s.mode.countBits(v)
	if s.eci != 0 {
		bits += 12
	}
	switch s.mode {
	case Numeric:
		bits += n/3*10 + [3]int{0, 4, 7}[n%3]
	case Alphanumeric:
		bits += n/2*11 + n%2*6
	default:
		bits += n * 8
	}
	return bits
}

// fitsCount reports whether the character count fits its field in version v.
func (s segment) fitsCount(v int) bool {
	return len(s.data) < 1<<uint(s.mode.countBits(v))
}

func (s segment) write(b *bitBuffer, v int) {
	if s.eci != 0 {
		b.Write(eciIndicator, 4)
		b.Write(uint32(s.eci), 8)
	}
	b.Write(s.mode.indicator(), 4)
	b.Write(uint32(len(s.data)), s.mode.countBits(v))
	switch s.mode {
	case Numeric:
		d := s.data
		for len(d) >= 3 {
			b.Write(digits(d[:3]), 10)
			d = d[3:]
		}
		switch len(d) {
		case 2:
			b.Write(digits(d), 7)
		case 1:
			b.Write(digits(d), 4)
		}
	case Alphanumeric:
		d := s.data
		for len(d) >= 2 {
			b.Write(uint32(alphaValue(d[0])*45+alphaValue(d[1])), 11)
			d = d[2:]
		}
		if len(d) == 1 {
			b.Write(uint32(alphaValue(d[0])), 6)
		}
	default:
		for _, c := range s.data {
			b.Write(uint32(c), 8)
		}
	}
}

func digits(d []byte) uint32 {
	var n uint32
	for _, c := range d {
		n = n*10 + uint32(c-'0')
	}
	return n
}

func alphaValue(c byte) int {
	return strings.IndexByte(alphanumericChars, c)
}
