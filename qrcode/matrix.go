package qrcode

// grid is the working module grid of a symbol under construction. Function
// modules (finders, timing, alignment, format, version) are tracked so data
// placement and masking skip them.
type grid struct {
	size     int
	dark     []bool
	function []bool
}

func newGrid(size int) *grid {
	return &grid{
		size:     size,
		dark:     make([]bool, size*size),
		function: make([]bool, size*size),
	}
}

func (g *grid) clone() *grid {
	c := &grid{
		size:     g.size,
		dark:     make([]bool, len(g.dark)),
		function: g.function,
	}
	copy(c.dark, g.dark)
	return c
}

func (g *grid) at(x, y int) bool {
	return g.dark[y*g.size+x]
}

func (g *grid) isFunction(x, y int) bool {
	return g.function[y*g.size+x]
}

func (g *grid) setFunction(x, y int, dark bool) {
	g.dark[y*g.size+x] = dark
	g.function[y*g.size+x] = true
}

func (g *grid) drawFunctionPatterns(v int, l Level) {
	size := g.size
	for i := 0; i < size; i++ {
		g.setFunction(6, i, i%2 == 0)
		g.setFunction(i, 6, i%2 == 0)
	}

	g.drawFinder(3, 3)
	g.drawFinder(size-4, 3)
	g.drawFinder(3, size-4)

	pos := alignmentPositions(v)
	last := len(pos) - 1
	for i := range pos {
		for j := range pos {
			// The three corners already hold finder patterns.
			if i == 0 && j == 0 || i == 0 && j == last || i == last && j == 0 {
				continue
			}
			g.drawAlignment(pos[i], pos[j])
		}
	}

	// Reserve the format area; the real bits are written once the mask is known.
	g.drawFormat(l, 0)
	g.drawVersion(v)
}

// drawFinder draws a finder pattern and its separator centred on x, y.
func (g *grid) drawFinder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || yy < 0 || xx >= g.size || yy >= g.size {
				continue
			}
			d := max(abs(dx), abs(dy))
			g.setFunction(xx, yy, d != 2 && d != 4)
		}
	}
}

func (g *grid) drawAlignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			g.setFunction(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// drawFormat writes both copies of the format information and the single
// always-dark module.
func (g *grid) drawFormat(l Level, mask int) {
	bits := formatBits(l, mask)
	bit := func(i int) bool { return bits>>uint(i)&1 != 0 }
	size := g.size

	for i := 0; i <= 5; i++ {
		g.setFunction(8, i, bit(i))
	}
	g.setFunction(8, 7, bit(6))
	g.setFunction(8, 8, bit(7))
	g.setFunction(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		g.setFunction(14-i, 8, bit(i))
	}

	for i := 0; i < 8; i++ {
		g.setFunction(size-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		g.setFunction(8, size-15+i, bit(i))
	}
	g.setFunction(8, size-8, true)
}

func (g *grid) drawVersion(v int) {
	if v < 7 {
		return
	}
	bits := versionBits(v)
	for i := 0; i < 18; i++ {
		dark := bits>>uint(i)&1 != 0
		a, b := g.size-11+i%3, i/3
		g.setFunction(a, b, dark)
		g.setFunction(b, a, dark)
	}
}

// drawCodewords places data in the two-column zig-zag order, starting at
// the bottom-right corner and skipping the vertical timing column.
func (g *grid) drawCodewords(data []byte) {
	i, n := 0, len(data)*8
	for right := g.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < g.size; vert++ {
			y := vert
			if upward {
				y = g.size - 1 - vert
			}
			for j := 0; j < 2; j++ {
				x := right - j
				if g.isFunction(x, y) || i >= n {
					continue
				}
				g.dark[y*g.size+x] = data[i>>3]>>(7-uint(i&7))&1 != 0
				i++
			}
		}
	}
}

// bitmap copies the grid into a BitMatrix.
func (g *grid) bitmap() *BitMatrix {
	m := newBitMatrix(g.size, g.size)
	copy(m.bits, g.dark)
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
