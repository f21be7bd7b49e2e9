package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/five82/thumbview/internal/thumbnail"
)

const halfBlock = "▀"

// renderImage draws img centered in a cols×rows cell box. Each cell carries
// two vertically stacked pixels: the top one as foreground of an upper half
// block and the bottom one as background.
func renderImage(img image.Image, cols, rows int, bg string) string {
	return joinCells(imageCells(img, cols, rows, bg))
}

// imageCells is renderImage before the rows are joined, one rendered cell
// per entry so overlays can replace single cells.
func imageCells(img image.Image, cols, rows int, bg string) [][]string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cells := make([][]string, rows)
	if img == nil {
		blank := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Render(" ")
		for r := range cells {
			cells[r] = make([]string, cols)
			for c := range cells[r] {
				cells[r][c] = blank
			}
		}
		return cells
	}

	fitted := imaging.Fit(img, cols, rows*2, imaging.Lanczos)
	b := fitted.Bounds()
	offX := (cols - b.Dx()) / 2
	offY := (rows*2 - b.Dy()) / 2

	pixel := func(x, y int) string {
		x -= offX
		y -= offY
		if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
			return bg
		}
		c := color.NRGBAModel.Convert(fitted.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
		if c.A == 0 {
			return bg
		}
		return hexColor(c)
	}

	for r := range cells {
		cells[r] = make([]string, cols)
		for c := range cells[r] {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(pixel(c, r*2))).
				Background(lipgloss.Color(pixel(c, r*2+1)))
			cells[r][c] = style.Render(halfBlock)
		}
	}
	return cells
}

func joinCells(cells [][]string) string {
	lines := make([]string, len(cells))
	for r, row := range cells {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// placeRemoveButton draws the remove control into the image cells. Margins
// are in surface pixels: one per column, two per row.
func placeRemoveButton(cells [][]string, b *thumbnail.RemoveButton, style lipgloss.Style) {
	if b == nil || len(cells) == 0 || len(cells[0]) == 0 {
		return
	}
	row := min(len(cells)-1, b.TopMargin/2)
	col := max(0, len(cells[row])-1-b.RightMargin)
	cells[row][col] = style.Render("x")
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// renderOverlay draws the transfer controls row beneath the preview.
func renderOverlay(v *thumbnail.View, styles Styles) string {
	c := v.Controls()
	if c == nil || !c.Visible() {
		return ""
	}
	if c.Spinning() {
		return styles.AccentText.Render(c.Frame() + " downloading")
	}
	return styles.Button.Render("↓ download")
}
