package render

import "image/color"

// statePalette maps cell values to display colors: dead is near-black, alive
// white, dying ember orange.
var statePalette = []color.RGBA{
	{R: 12, G: 12, B: 16, A: 255},
	{R: 240, G: 240, B: 240, A: 255},
	{R: 235, G: 140, B: 40, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the palette end clamp to the last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// mosaicLayout computes the slice-mosaic geometry for a grid with the given
// dimensions: Z slices arranged in a near-square arrangement of columns and
// rows with a one-pixel gutter between tiles.
func mosaicLayout(x, y, z int) (cols, rows, w, h int) {
	cols = 1
	for cols*cols < z {
		cols++
	}
	rows = (z + cols - 1) / cols
	w = cols*(x+1) - 1
	h = rows*(y+1) - 1
	return cols, rows, w, h
}
