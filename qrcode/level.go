package qrcode

import (
	"fmt"
	"strings"
)

// Level is a QR error correction level. Its value is the two-bit code stored
// in the format information, which makes Medium the zero Level.
type Level int

const (
	Medium   Level = 0 // recovers ~15% of codewords
	Low      Level = 1 // ~7%
	High     Level = 2 // ~30%
	Quartile Level = 3 // ~25%
)

// index orders levels from least to most tolerant for table lookups.
func (l Level) index() int {
	return [4]int{1, 0, 3, 2}[l]
}

func (l Level) valid() bool {
	return l >= Medium && l <= Quartile
}

func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return [4]string{"M", "L", "H", "Q"}[l]
}

// ParseLevel accepts L, M, Q, H or their long names, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium", "":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return 0, fmt.Errorf("%w: unknown error correction level %q", ErrInvalidOption, s)
}

// formatBits returns the 15-bit BCH-protected format information for level l
// and mask pattern mask, already XORed with the 0x5412 mask.
func formatBits(l Level, mask int) uint32 {
	data := uint32(l)<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// versionBits returns the 18-bit BCH-protected version information, used by
// versions 7 and up.
func versionBits(v int) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*0x1f25
	}
	return uint32(v)<<12 | rem
}
