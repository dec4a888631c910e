package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes the provided block starting at x,y. Every line begins
// at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitLines(content))
}

// overlayAt paints block over whatever is already at x,y. Cells outside the
// block keep their content so the dropdown floats over the form below it.
func (c *Canvas) overlayAt(block string, at rect) {
	if c == nil {
		return
	}
	c.drawBlockAt(at.x, at.y, splitLines(block))
}

// bottomRightOverlay anchors block to the bottom-right corner with padding.
func (c *Canvas) bottomRightOverlay(block string, padding int) {
	lines := splitLines(block)
	if len(lines) == 0 || c == nil {
		return
	}
	if padding < 0 {
		padding = 0
	}
	startY := c.height - len(lines) - padding
	if startY < 0 {
		startY = 0
	}
	startX := c.width - maxLineWidth(lines) - padding
	if startX < 0 {
		startX = 0
	}
	c.drawBlockAt(startX, startY, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}
