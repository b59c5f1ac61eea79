package render

import (
	"github.com/valerio/go-sixtyfour/sixtyfour/display"
	"github.com/valerio/go-sixtyfour/sixtyfour/video"
)

// UpperHalfBlock draws the top pixel of a cell in the foreground colour and
// the bottom one in the background colour.
const UpperHalfBlock = '▀'

// FitCells returns the size in terminal cells of a picture scaled down from
// the framebuffer to fit maxCols x maxRows. Each cell holds one column of two
// pixels. The picture is never scaled up.
func FitCells(fbWidth, fbHeight, maxCols, maxRows int) (cols, rows int) {
	if maxCols <= 0 || maxRows <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return 0, 0
	}
	cols = min(fbWidth, maxCols)
	rows = min((fbHeight+display.CellsPerRow-1)/display.CellsPerRow, maxRows)

	// keep the aspect ratio, cells being two pixels tall
	if byWidth := cols * fbHeight / fbWidth / display.CellsPerRow; byWidth < rows && byWidth > 0 {
		rows = byWidth
	} else if byHeight := rows * display.CellsPerRow * fbWidth / fbHeight; byHeight < cols && byHeight > 0 {
		cols = byHeight
	}
	return cols, rows
}

// SampleCell picks the top and bottom pixels shown by cell (cx, cy) of a
// cols x rows picture using nearest neighbour sampling.
func SampleCell(fb *video.FrameBuffer, cols, rows, cx, cy int) (top, bottom video.Color) {
	sx := cx * fb.Width() / cols
	pixelRows := rows * display.CellsPerRow
	ty := (cy * display.CellsPerRow) * fb.Height() / pixelRows
	by := (cy*display.CellsPerRow + 1) * fb.Height() / pixelRows
	return fb.GetPixel(sx, ty), fb.GetPixel(sx, min(by, fb.Height()-1))
}
