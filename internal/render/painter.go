//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"vox-ca/internal/core"
)

// SlicePainter renders a 3D grid as a mosaic of its Z-slices, one tile per
// depth layer, separated by a one-pixel gutter.
type SlicePainter struct {
	x, y, z    int
	cols, rows int
	img        *ebiten.Image
	buf        []byte
	tile       []byte
}

// NewSlicePainter allocates a painter for grids of the given dimensions.
func NewSlicePainter(x, y, z int) *SlicePainter {
	cols, rows, w, h := mosaicLayout(x, y, z)
	p := &SlicePainter{
		x: x, y: y, z: z,
		cols: cols, rows: rows,
		buf:  make([]byte, 4*w*h),
		tile: make([]byte, 4*x*y),
	}
	p.img = ebiten.NewImage(w, h)
	return p
}

// Size returns the mosaic dimensions in pixels before scaling.
func (p *SlicePainter) Size() (int, int) {
	_, _, w, h := mosaicLayout(p.x, p.y, p.z)
	return w, h
}

// Blit uploads the grid into the mosaic image and draws it scaled.
func (p *SlicePainter) Blit(dst *ebiten.Image, g *core.Grid, scale int) {
	if g == nil || g.X != p.x || g.Y != p.y || g.Z != p.z {
		return
	}
	w, _ := p.Size()
	cells := g.Cells()
	sliceLen := p.x * p.y
	for z := 0; z < p.z; z++ {
		fillPaletteRGBA(p.tile, cells[z*sliceLen:(z+1)*sliceLen], statePalette)
		ox := (z % p.cols) * (p.x + 1)
		oy := (z / p.cols) * (p.y + 1)
		for row := 0; row < p.y; row++ {
			src := row * p.x * 4
			dstOff := ((oy+row)*w + ox) * 4
			copy(p.buf[dstOff:dstOff+p.x*4], p.tile[src:src+p.x*4])
		}
	}
	p.img.ReplacePixels(p.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}
