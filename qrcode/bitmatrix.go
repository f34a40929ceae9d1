package qrcode

import "strings"

// BitMatrix is an immutable grid of modules or pixels; true is dark.
// The zero value is an empty 0×0 matrix.
type BitMatrix struct {
	width, height int
	bits          []bool
}

func newBitMatrix(width, height int) *BitMatrix {
	return &BitMatrix{width: width, height: height, bits: make([]bool, width*height)}
}

// Width returns the number of columns.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *BitMatrix) Height() int { return m.height }

// Get reports whether the cell at column x, row y is dark. Cells outside the
// matrix are light.
func (m *BitMatrix) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

func (m *BitMatrix) set(x, y int, dark bool) {
	m.bits[y*m.width+x] = dark
}

// setRegion darkens the w×h rectangle with top-left corner x, y.
func (m *BitMatrix) setRegion(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		row := m.bits[yy*m.width:]
		for xx := x; xx < x+w; xx++ {
			row[xx] = true
		}
	}
}

// Equal reports whether m and o have the same size and cells.
func (m *BitMatrix) Equal(o *BitMatrix) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, b := range m.bits {
		if o.bits[i] != b {
			return false
		}
	}
	return true
}

// String draws the matrix with "X " for dark and "  " for light cells,
// one row per line. Meant for debugging and test failure output.
func (m *BitMatrix) String() string {
	var sb strings.Builder
	sb.Grow(m.height * (m.width*2 + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				sb.WriteString("X ")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
