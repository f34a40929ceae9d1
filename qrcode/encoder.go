// Package qrcode encodes text into QR code symbols.
//
// Generate is the usual entry point: it encodes content at the default
// Medium error correction level and scales the symbol, with its quiet zone,
// into a matrix of the requested pixel size. Encode exposes the symbol at
// one cell per module for callers that do their own scaling.
//
// Every function is safe for concurrent use; nothing is shared between calls.
package qrcode

import (
	"fmt"
	"math"
	"unicode/utf8"

	"rsc.io/qr/gf256"
)

// DefaultMargin is the quiet zone width, in modules, used when
// Options.Margin is nil.
const DefaultMargin = 4

// field is GF(256) with the QR polynomial x^8+x^4+x^3+x^2+1 and generator 2.
var field = gf256.NewField(0x11d, 2)

// Options tunes encoding. The zero value selects Medium error correction,
// the default quiet zone, the smallest fitting version and the mask with the
// lowest penalty.
type Options struct {
	Level Level

	// Margin is the quiet zone width in modules.
	Margin *int

	// Version forces a symbol version (1-40). Zero picks the smallest that fits.
	Version int

	// Mask forces a mask pattern (0-7).
	Mask *int
}

func (o Options) margin() int {
	if o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

func (o Options) validate() error {
	switch {
	case !o.Level.valid():
		return fmt.Errorf("%w: error correction level %d", ErrInvalidOption, int(o.Level))
	case o.Margin != nil && *o.Margin < 0:
		return fmt.Errorf("%w: negative margin %d", ErrInvalidOption, *o.Margin)
	case o.Version != 0 && (o.Version < MinVersion || o.Version > MaxVersion):
		return fmt.Errorf("%w: version %d", ErrInvalidOption, o.Version)
	case o.Mask != nil && (*o.Mask < 0 || *o.Mask >= numMasks):
		return fmt.Errorf("%w: mask pattern %d", ErrInvalidOption, *o.Mask)
	}
	return nil
}

// Code is an encoded QR symbol at one cell per module, without quiet zone.
type Code struct {
	Version int
	Level   Level
	Mask    int
	Mode    Mode
	Modules *BitMatrix
}

// Size returns the number of modules on a side.
func (c *Code) Size() int { return c.Modules.Width() }

// Generate encodes content with default options and renders it into a
// width×height matrix, one cell per pixel.
func Generate(content string, width, height int) (*BitMatrix, error) {
	return GenerateWithOptions(content, width, height, Options{})
}

// GenerateWithOptions is Generate with explicit encoding options.
func GenerateWithOptions(content string, width, height int, opts Options) (*BitMatrix, error) {
	if width <= 0 || height <= 0 {
		return nil, encodingErr("generate", fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height))
	}
	c, err := Encode(content, opts)
	if err != nil {
		return nil, err
	}
	return c.Render(width, height, opts.margin())
}

// Encode builds the smallest symbol holding content.
func Encode(content string, opts Options) (*Code, error) {
	if content == "" {
		return nil, encodingErr("encode", ErrEmptyContent)
	}
	if !utf8.ValidString(content) {
		return nil, encodingErr("encode", ErrInvalidContent)
	}
	if err := opts.validate(); err != nil {
		return nil, encodingErr("encode", err)
	}

	seg := newSegment(content)
	v, err := chooseVersion(seg, opts.Level, opts.Version)
	if err != nil {
		return nil, encodingErr("encode", err)
	}

	codewords := interleave(dataCodewordsFor(seg, v, opts.Level), v, opts.Level)

	g := newGrid(symbolSize(v))
	g.drawFunctionPatterns(v, opts.Level)
	g.drawCodewords(codewords)
	g, mask := g.pickMask(opts.Level, opts.Mask)

	return &Code{
		Version: v,
		Level:   opts.Level,
		Mask:    mask,
		Mode:    seg.mode,
		Modules: g.bitmap(),
	}, nil
}

func fits(seg segment, v int, l Level) bool {
	return seg.fitsCount(v) && seg.bitLen(v) <= dataCodewords(v, l)*8
}

func chooseVersion(seg segment, l Level, forced int) (int, error) {
	if forced != 0 {
		if !fits(seg, forced, l) {
			return 0, fmt.Errorf("%w: %d bits exceed the %d-bit capacity of version %d-%s",
				ErrDataTooLong, seg.bitLen(forced), dataCodewords(forced, l)*8, forced, l)
		}
		return forced, nil
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if fits(seg, v, l) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %d bytes in %s mode exceed the capacity of version %d-%s",
		ErrDataTooLong, len(seg.data), seg.mode, MaxVersion, l)
}

// dataCodewordsFor encodes seg and fills the rest of version v's data
// capacity with the terminator and alternating pad bytes.
func dataCodewordsFor(seg segment, v int, l Level) []byte {
	var b bitBuffer
	seg.write(&b, v)
	capacity := dataCodewords(v, l) * 8
	b.Write(0, min(4, capacity-b.Len()))
	if r := b.Len() % 8; r != 0 {
		b.Write(0, 8-r)
	}
	for pad := uint32(0xec); b.Len() < capacity; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
	return b.Bytes()
}

// interleave splits data into error correction blocks, appends each block's
// Reed-Solomon codewords and interleaves the result column by column.
func interleave(data []byte, v int, l Level) []byte {
	i := l.index()
	nblocks, ecLen := eccBlocks[i][v], eccPerBlock[i][v]
	total := totalCodewords(v)
	short := nblocks - total%nblocks
	shortLen := total/nblocks - ecLen

	rs := gf256.NewRSEncoder(field, ecLen)
	blocks := make([][]byte, nblocks)
	ecc := make([][]byte, nblocks)
	for b, k := 0, 0; b < nblocks; b++ {
		n := shortLen
		if b >= short {
			n++
		}
		blocks[b] = data[k : k+n]
		ecc[b] = make([]byte, ecLen)
		rs.ECC(blocks[b], ecc[b])
		k += n
	}

	out := make([]byte, 0, total)
	for j := 0; j <= shortLen; j++ {
		for _, blk := range blocks {
			if j < len(blk) {
				out = append(out, blk[j])
			}
		}
	}
	for j := 0; j < ecLen; j++ {
		for _, e := range ecc {
			out = append(out, e[j])
		}
	}
	return out
}

// pickMask applies the forced mask, or the one with the lowest penalty, and
// writes the matching format information.
func (g *grid) pickMask(l Level, forced *int) (*grid, int) {
	try := func(m int) *grid {
		c := g.clone()
		c.applyMask(m)
		c.drawFormat(l, m)
		return c
	}
	if forced != nil {
		return try(*forced), *forced
	}
	var best *grid
	bestMask, bestPenalty := 0, math.MaxInt
	for m := 0; m < numMasks; m++ {
		c := try(m)
		if p := c.penalty(); p < bestPenalty {
			best, bestMask, bestPenalty = c, m, p
		}
	}
	return best, bestMask
}

// Render scales the symbol into a width×height matrix. The symbol and a
// quiet zone of margin modules are scaled by the largest integer factor that
// fits and centred. Dimensions too small for a single pixel per module fail
// with ErrDoesNotFit.
func (c *Code) Render(width, height, margin int) (*BitMatrix, error) {
	if width <= 0 || height <= 0 {
		return nil, encodingErr("render", fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height))
	}
	if margin < 0 {
		return nil, encodingErr("render", fmt.Errorf("%w: negative margin %d", ErrInvalidOption, margin))
	}
	size := c.Size()
	full := size + 2*margin
	if full > width || full > height {
		return nil, encodingErr("render", fmt.Errorf("%w: version %d with margin %d needs at least %dx%d, got %dx%d",
			ErrDoesNotFit, c.Version, margin, full, full, width, height))
	}

	scale := min(width/full, height/full)
	left := (width - size*scale) / 2
	top := (height - size*scale) / 2

	out := newBitMatrix(width, height)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c.Modules.Get(x, y) {
				out.setRegion(left+x*scale, top+y*scale, scale, scale)
			}
		}
	}
	return out, nil
}

// Bitmap returns the symbol at one cell per module surrounded by a quiet
// zone of margin modules. A negative margin is treated as zero.
func (c *Code) Bitmap(margin int) *BitMatrix {
	margin = max(margin, 0)
	size := c.Size()
	out := newBitMatrix(size+2*margin, size+2*margin)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c.Modules.Get(x, y) {
				out.set(x+margin, y+margin, true)
			}
		}
	}
	return out
}
