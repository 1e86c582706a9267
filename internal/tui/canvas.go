package tui

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
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

// Canvas is a grid of braille cells addressed in dots. Its size in dots is
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	labels        map[int]rune
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		labels: make(map[int]rune),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	clear(c.labels)
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// DrawEllipse outlines an axis-aligned ellipse centred on (cx, cy), in dots.
func (c *Canvas) DrawEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		c.Set(int(math.Round(cx)), int(math.Round(cy)))
		return
	}
	steps := max(int(2*math.Pi*math.Max(rx, ry)), 8)
	px, py := int(math.Round(cx+rx)), int(math.Round(cy))
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a)))
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// Label writes text into whole cells starting at cell (col, row). Labels
// replace the braille cell they cover and are dropped by Clear.
func (c *Canvas) Label(col, row int, text string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= 0 && col < c.Width {
			c.labels[row*c.Width+col] = r
		}
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if l, ok := c.labels[i*c.Width+j]; ok {
				r = l
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
