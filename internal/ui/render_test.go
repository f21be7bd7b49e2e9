package ui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/five82/thumbview/internal/thumbnail"
)

func TestRenderImage_HalfBlocks(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{R: 0xff, A: 0xff})

	out := renderImage(img, 2, 1, "#000000")

	if strings.Count(out, "\n") != 0 {
		t.Fatalf("renderImage produced %d lines, want 1", strings.Count(out, "\n")+1)
	}
	if w := lipgloss.Width(out); w != 2 {
		t.Fatalf("width = %d, want 2", w)
	}
	if !strings.Contains(out, halfBlock) {
		t.Fatalf("output %q has no half blocks", out)
	}
}

func TestRenderImage_EmptyBox(t *testing.T) {
	out := renderImage(nil, 3, 2, "#000000")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if w := lipgloss.Width(l); w != 3 {
			t.Fatalf("line width = %d, want 3", w)
		}
	}
	if renderImage(nil, 0, 2, "#000000") != "" {
		t.Fatal("zero-width box should render nothing")
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}); got != "#1e1e2e" {
		t.Fatalf("hexColor = %q, want #1e1e2e", got)
	}
}

func TestPlaceRemoveButton_UsesMargins(t *testing.T) {
	plain := lipgloss.NewStyle()
	tests := []struct {
		name     string
		button   thumbnail.RemoveButton
		row, col int
	}{
		{"corner", thumbnail.RemoveButton{}, 0, 9},
		{"right margin", thumbnail.RemoveButton{RightMargin: 3}, 0, 6},
		{"top margin in pixel rows", thumbnail.RemoveButton{TopMargin: 5}, 2, 9},
		{"clamped", thumbnail.RemoveButton{TopMargin: 100, RightMargin: 100}, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := imageCells(nil, 10, 4, "#000000")
			b := tt.button
			placeRemoveButton(cells, &b, plain)

			for r, row := range cells {
				for c, cell := range row {
					got := strings.Contains(cell, "x")
					want := r == tt.row && c == tt.col
					if got != want {
						t.Fatalf("cell (%d,%d) has button = %v, want %v", r, c, got, want)
					}
				}
			}
		})
	}
}

func TestPlaceRemoveButton_NoButtonOrCells(t *testing.T) {
	cells := imageCells(nil, 2, 1, "#000000")
	placeRemoveButton(cells, nil, lipgloss.NewStyle())
	if strings.Contains(joinCells(cells), "x") {
		t.Fatal("button drawn without a remove control")
	}
	placeRemoveButton(nil, &thumbnail.RemoveButton{}, lipgloss.NewStyle())
}
