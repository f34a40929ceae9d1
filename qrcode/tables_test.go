package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/qr/gf256"
)

func TestDataCodewords_KnownCapacities(t *testing.T) {
	tests := []struct {
		v    int
		l    Level
		want int
	}{
		{1, Low, 19},
		{1, Medium, 16},
		{1, Quartile, 13},
		{1, High, 9},
		{10, Quartile, 154},
		{40, Low, 2956},
		{40, Medium, 2334},
		{40, Quartile, 1666},
		{40, High, 1276},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, dataCodewords(tc.v, tc.l), "version %d-%s", tc.v, tc.l)
	}
}

func TestBlockTable_Consistent(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		total := totalCodewords(v)
		for _, l := range []Level{Low, Medium, Quartile, High} {
			i := l.index()
			nblocks := eccBlocks[i][v]
			require.Positive(t, nblocks)
			// Blocks differ in data length by at most one codeword.
			assert.Less(t, eccPerBlock[i][v]*nblocks, total, "version %d-%s", v, l)
			assert.Positive(t, total/nblocks-eccPerBlock[i][v], "version %d-%s", v, l)
		}
	}
}

func TestAlignmentPositions(t *testing.T) {
	assert.Empty(t, alignmentPositions(1))
	assert.Equal(t, []int{6, 18}, alignmentPositions(2))
	assert.Equal(t, []int{6, 22, 38}, alignmentPositions(7))
	assert.Equal(t, []int{6, 34, 60, 86, 112, 138}, alignmentPositions(32))
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, alignmentPositions(40))
}

func TestFormatAndVersionBits(t *testing.T) {
	assert.Equal(t, uint32(0b101010000010010), formatBits(Medium, 0))
	assert.Equal(t, uint32(0b111011111000100), formatBits(Low, 0))
	assert.Equal(t, uint32(0x07c94), versionBits(7))
	assert.Equal(t, uint32(0x28c69), versionBits(40))
}

func TestHelloWorldCodewords(t *testing.T) {
	seg := newSegment("HELLO WORLD")
	require.Equal(t, Alphanumeric, seg.mode)

	data := dataCodewordsFor(seg, 1, Medium)
	assert.Equal(t, []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}, data)

	ecc := make([]byte, 10)
	gf256.NewRSEncoder(field, 10).ECC(data, ecc)
	assert.Equal(t, []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}, ecc)

	all := interleave(data, 1, Medium)
	assert.Equal(t, append(append([]byte{}, data...), ecc...), all)
}

func TestNumericEncoding(t *testing.T) {
	var b bitBuffer
	newSegment("01234567").write(&b, 1)
	// 0001 0000001000 0000001100 0101011001 1000011
	assert.Equal(t, 4+10+10+10+7, b.Len())
	assert.Equal(t, []byte{0b00010000, 0b00100000, 0b00001100, 0b01010110, 0b01100001, 0b10000000}, b.Bytes())
}

func TestNewSegment_ByteModes(t *testing.T) {
	s := newSegment("café")
	assert.Equal(t, Byte, s.mode)
	assert.Zero(t, s.eci)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, s.data)

	s = newSegment("€100")
	assert.Equal(t, Byte, s.mode)
	assert.Equal(t, eciUTF8, s.eci)
	assert.Equal(t, []byte("€100"), s.data)
}

func TestMaskBit_Patterns(t *testing.T) {
	// Top-left 3x3 corner of each pattern, row-major.
	want := [numMasks]string{
		"101010101",
		"111000111",
		"100100100",
		"100001010",
		"111111000",
		"111100100",
		"111111110",
		"101000100",
	}
	for m := 0; m < numMasks; m++ {
		got := make([]byte, 0, 9)
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if maskBit(m, x, y) {
					got = append(got, '1')
				} else {
					got = append(got, '0')
				}
			}
		}
		assert.Equal(t, want[m], string(got), "mask %d", m)
	}
}

func TestPenalty_Balance(t *testing.T) {
	g := newGrid(21)
	// All light: 100% deviation -> 10 steps of 5%.
	assert.Equal(t, 100, g.penaltyBalance())
}
