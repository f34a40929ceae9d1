package render

import "strings"

// Glyphs maps cells to text. Dark and Light should have the same display
// width; two columns per cell keeps modules roughly square in a terminal.
type Glyphs struct {
	Dark  string
	Light string
}

var (
	// DefaultGlyphs draws dark modules as full blocks, for light backgrounds.
	DefaultGlyphs = Glyphs{Dark: "██", Light: "  "}

	// InvertedGlyphs suits dark terminal backgrounds.
	InvertedGlyphs = Glyphs{Dark: "  ", Light: "██"}

	// PlainGlyphs sticks to 7-bit ASCII.
	PlainGlyphs = Glyphs{Dark: "##", Light: "  "}
)

// ToASCII renders m with DefaultGlyphs.
func ToASCII(m Matrix) string {
	return DefaultGlyphs.Render(m)
}

// Render writes one line per matrix row, each terminated by a newline.
func (g Glyphs) Render(m Matrix) string {
	w, h := m.Width(), m.Height()
	var sb strings.Builder
	sb.Grow(h * (w*max(len(g.Dark), len(g.Light)) + 1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				sb.WriteString(g.Dark)
			} else {
				sb.WriteString(g.Light)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToCompact packs two matrix rows into each line using half-block
// characters, one column per cell. An odd final row is paired with a light
// row. With invert set, dark and light swap.
func ToCompact(m Matrix, invert bool) string {
	w, h := m.Width(), m.Height()
	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := m.Get(x, y) != invert
			bottom := invert
			if y+1 < h {
				bottom = m.Get(x, y+1) != invert
			}
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
