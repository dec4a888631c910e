package ui

import (
	"strings"
	"testing"
)

func TestCanvasNormalizesNewlines(t *testing.T) {
	canvas := NewCanvas(8, 4)
	canvas.DrawStringAt(0, 0, "A\nB")

	output := canvas.Render()
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	if got := strings.TrimSpace(stripANSI(lines[0])); got != "A" {
		t.Fatalf("line 0 mismatch, expected A got %q", got)
	}
	if got := strings.TrimSpace(stripANSI(lines[1])); got != "B" {
		t.Fatalf("line 1 mismatch, expected B got %q", got)
	}
}

func TestCanvasOverlayKeepsSurroundingCells(t *testing.T) {
	canvas := NewCanvas(12, 3)
	canvas.DrawStringAt(0, 0, "aaaaaaaaaaaa\nbbbbbbbbbbbb\ncccccccccccc")
	canvas.overlayAt("XY", rect{x: 2, y: 1, w: 2, h: 1})

	lines := strings.Split(canvas.Render(), "\n")
	if got := stripANSI(lines[1]); got != "bbXYbbbbbbbb" {
		t.Fatalf("overlay row mismatch: %q", got)
	}
	if got := stripANSI(lines[0]); got != "aaaaaaaaaaaa" {
		t.Fatalf("row above overlay changed: %q", got)
	}
}

func TestCanvasBottomRightOverlayAnchorsToast(t *testing.T) {
	const width, height = 30, 6
	canvas := NewCanvas(width, height)

	canvas.bottomRightOverlay("Copied", 1)
	lines := strings.Split(canvas.Render(), "\n")
	targetRow := height - 1 - 1
	line := stripANSI(lines[targetRow])

	idx := strings.Index(line, "Copied")
	if idx == -1 {
		t.Fatalf("expected toast text in row %d, got %q", targetRow, line)
	}
	if idx < width-len("Copied")-2 {
		t.Fatalf("expected toast near right edge, got column %d", idx)
	}
}
