package qrcode

const numMasks = 8

// maskBit reports whether mask pattern m inverts the module at column x, row y.
func maskBit(m, x, y int) bool {
	switch m {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	panic("qrcode: bad mask pattern")
}

// applyMask inverts every data module selected by mask pattern m.
func (g *grid) applyMask(m int) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if !g.isFunction(x, y) && maskBit(m, x, y) {
				i := y*g.size + x
				g.dark[i] = !g.dark[i]
			}
		}
	}
}

// Penalty weights for rules N1 to N4.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// penalty scores a masked grid; lower is better.
func (g *grid) penalty() int {
	return g.penaltyRuns(true) + g.penaltyRuns(false) +
		g.penaltyBoxes() + g.penaltyFinderLike() + g.penaltyBalance()
}

// penaltyRuns is rule N1: runs of five or more same-coloured modules.
func (g *grid) penaltyRuns(horizontal bool) int {
	p := 0
	for i := 0; i < g.size; i++ {
		run := 0
		var prev bool
		for j := 0; j < g.size; j++ {
			var bit bool
			if horizontal {
				bit = g.at(j, i)
			} else {
				bit = g.at(i, j)
			}
			if j > 0 && bit == prev {
				run++
				continue
			}
			if run >= 5 {
				p += penaltyN1 + run - 5
			}
			run, prev = 1, bit
		}
		if run >= 5 {
			p += penaltyN1 + run - 5
		}
	}
	return p
}

// penaltyBoxes is rule N2: 2×2 blocks of one colour, overlaps counted.
func (g *grid) penaltyBoxes() int {
	p := 0
	for y := 0; y < g.size-1; y++ {
		for x := 0; x < g.size-1; x++ {
			c := g.at(x, y)
			if c == g.at(x+1, y) && c == g.at(x, y+1) && c == g.at(x+1, y+1) {
				p += penaltyN2
			}
		}
	}
	return p
}

// penaltyFinderLike is rule N3: 1:1:3:1:1 dark-light patterns with four
// light modules on either side, in rows and columns.
func (g *grid) penaltyFinderLike() int {
	n := 0
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.finderLike(x, y, 1, 0) {
				n++
			}
			if g.finderLike(x, y, 0, 1) {
				n++
			}
		}
	}
	return n * penaltyN3
}

var finderPattern = [7]bool{true, false, true, true, true, false, true}

func (g *grid) finderLike(x, y, dx, dy int) bool {
	if x+6*dx >= g.size || y+6*dy >= g.size {
		return false
	}
	for i, want := range finderPattern {
		if g.at(x+i*dx, y+i*dy) != want {
			return false
		}
	}
	return g.lightRun(x-4*dx, y-4*dy, dx, dy) || g.lightRun(x+7*dx, y+7*dy, dx, dy)
}

// lightRun reports whether the four modules from x, y along dx, dy are light.
// Modules outside the symbol count as light.
func (g *grid) lightRun(x, y, dx, dy int) bool {
	for i := 0; i < 4; i++ {
		xx, yy := x+i*dx, y+i*dy
		if xx < 0 || yy < 0 || xx >= g.size || yy >= g.size {
			continue
		}
		if g.at(xx, yy) {
			return false
		}
	}
	return true
}

// penaltyBalance is rule N4: deviation of the dark ratio from 50% in 5% steps.
func (g *grid) penaltyBalance() int {
	dark := 0
	for _, d := range g.dark {
		if d {
			dark++
		}
	}
	total := len(g.dark)
	return abs(dark*2-total) * 10 / total * penaltyN4
}
