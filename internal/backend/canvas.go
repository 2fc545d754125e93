package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is an in-memory text surface. Hosts that own the terminal
// themselves, such as a bubbletea program, draw onto a Canvas and print
// its String. Styles are ignored.
type Canvas struct {
	mu            sync.Mutex
	width, height int
	cells         [][]rune
}

// NewCanvas creates a canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.width, c.height = max(width, 0), max(height, 0)
	c.cells = make([][]rune, c.height)
	c.clearLocked()
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.width, c.height
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
}

func (c *Canvas) clearLocked() {
	for y := range c.cells {
		row := make([]rune, c.width)
		for x := range row {
			row[x] = ' '
		}
		c.cells[y] = row
	}
}

// Show is a no-op; the host reads String when it redraws.
func (c *Canvas) Show() {}

// DrawText writes s at (x, y) with the same clipping as Terminal.DrawText.
// A wide rune occupies its first cell; the cells it covers stay blank.
func (c *Canvas) DrawText(x, y int, s string, _ tcell.Style) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if y < 0 || y >= c.height {
		return x
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			break
		}
		if x >= 0 {
			c.cells[y][x] = r
			for i := 1; i < w; i++ {
				c.cells[y][x+i] = 0
			}
		}
		x += w
	}
	return x
}

// String renders the canvas as newline-separated rows with trailing
// blanks trimmed.
func (c *Canvas) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var line strings.Builder
		for _, r := range row {
			if r != 0 {
				line.WriteRune(r)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
	}
	return b.String()
}
