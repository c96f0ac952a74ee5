package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid. Each cell also keeps the brightest alpha plotted
// into it so the renderer can shade cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Level         [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w×h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Level = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Level[i] = make([]float64, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Plot sets the sub-pixel (x, y) with brightness a. The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Plot(x, y int, a float64) {
	if x < 0 || y < 0 || a <= 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if a > c.Level[row][col] {
		c.Level[row][col] = a
	}
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Level[i][j] = 0
		}
	}
}

// ClearCells blanks the cell rectangle [col0,col1) x [row0,row1).
func (c *Canvas) ClearCells(col0, row0, col1, row1 int) {
	col0, row0 = max(col0, 0), max(row0, 0)
	col1, row1 = min(col1, c.Width), min(row1, c.Height)
	for i := row0; i < row1; i++ {
		for j := col0; j < col1; j++ {
			c.Grid[i][j] = blank
			c.Level[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, a float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, a)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle plots every sub-pixel within r of (cx, cy); at least the center is plotted.
func (c *Canvas) FillCircle(cx, cy, r float64, a float64) {
	c.Plot(int(math.Floor(cx)), int(math.Floor(cy)), a)
	if r < 1 {
		return
	}
	r2 := r * r
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r2 {
				c.Plot(x, y, a)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with each cell styled by brightness; styles[0] is the
// dimmest. Runs of equally bright cells are styled together.
func (c *Canvas) Render(styles []lipgloss.Style) string {
	if len(styles) == 0 {
		return c.String()
	}
	var b strings.Builder
	run := make([]rune, 0, c.Width)
	for i, row := range c.Grid {
		bucket := -1
		flush := func() {
			if len(run) == 0 {
				return
			}
			if bucket < 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(styles[bucket].Render(string(run)))
			}
			run = run[:0]
		}
		for j, r := range row {
			k := -1
			if r == blank {
				r = ' '
			} else {
				k = shadeIndex(c.Level[i][j], len(styles))
			}
			if k != bucket {
				flush()
				bucket = k
			}
			run = append(run, r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func shadeIndex(level float64, n int) int {
	k := int(level * float64(n))
	if k >= n {
		return n - 1
	}
	if k < 0 {
		return 0
	}
	return k
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
