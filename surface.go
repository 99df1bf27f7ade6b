package easel

import (
	"image"
	"image/draw"
	"math"
)

// Surface is the engine's rendering target: a pixel-addressed canvas backed
// by lazily-allocated tiles. Blank regions have no tile at all; the first dab
// to touch a region allocates one and reports it through the engine's render
// events.
type Surface struct {
	w, h  int
	tiles map[image.Point]*Tile

	// Event hooks, installed by the owning engine. Never nil once the
	// surface is attached to an engine.
	onNewTile    func(*Surface, *Tile)
	onUpdateTile func(*Surface, *Tile)
	onCleared    func(*Surface)
}

func newSurface(w, h int) *Surface {
	nop2 := func(*Surface, *Tile) {}
	return &Surface{
		w:            w,
		h:            h,
		tiles:        make(map[image.Point]*Tile),
		onNewTile:    nop2,
		onUpdateTile: nop2,
		onCleared:    func(*Surface) {},
	}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (w, h int) {
	return s.w, s.h
}

// Bounds returns the surface rectangle in pixels.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h)
}

// TileCount returns the number of currently allocated tiles.
func (s *Surface) TileCount() int {
	return len(s.tiles)
}

// Tiles returns the allocated tiles in unspecified order.
func (s *Surface) Tiles() []*Tile {
	out := make([]*Tile, 0, len(s.tiles))
	for _, t := range s.tiles {
		out = append(out, t)
	}
	return out
}

// tileAt returns the tile at the given tile coordinates, allocating it (and
// firing the new-tile hook) if the region was blank.
func (s *Surface) tileAt(tx, ty int) *Tile {
	p := image.Pt(tx, ty)
	if t, ok := s.tiles[p]; ok {
		return t
	}
	t := newTile(s, tx, ty)
	s.tiles[p] = t
	s.onNewTile(s, t)
	return t
}

// setSize resizes the surface. Existing content is dropped: a resize is a
// reset to blank, so the cleared hook fires.
func (s *Surface) setSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.w, s.h = w, h
	s.clear()
}

// clear drops every allocated tile and fires the cleared hook. The dropped
// Tile objects are dead as far as the engine is concerned; scene-side
// cleanup happens in the cleared handler.
func (s *Surface) clear() {
	s.tiles = make(map[image.Point]*Tile)
	s.onCleared(s)
}

// drawDab composites one brush dab onto the surface, allocating tiles as
// needed. (x, y) is the dab center; radius is in pixels; r, g, b are the dab
// color in [0, 1]; alpha is the dab's peak opacity; hardness shapes the
// falloff; aspect >= 1 and angle (radians) squash the dab into a tilted
// ellipse. Fires an update event for every tile whose pixels changed.
func (s *Surface) drawDab(x, y, radius, r, g, b, alpha, hardness, aspect, angle float32) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	if aspect < 1 {
		aspect = 1
	}

	// Bounding box, clipped to the surface.
	box := image.Rect(
		int(math.Floor(float64(x-radius))),
		int(math.Floor(float64(y-radius))),
		int(math.Ceil(float64(x+radius)))+1,
		int(math.Ceil(float64(y+radius)))+1,
	).Intersect(s.Bounds())
	if box.Empty() {
		return
	}

	sinA := float32(math.Sin(float64(angle)))
	cosA := float32(math.Cos(float64(angle)))

	tx0, ty0 := box.Min.X/TileSize, box.Min.Y/TileSize
	tx1, ty1 := (box.Max.X-1)/TileSize, (box.Max.Y-1)/TileSize

	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			t := s.tileAt(tx, ty)
			clip := t.Bounds().Intersect(box)
			changed := false
			for py := clip.Min.Y; py < clip.Max.Y; py++ {
				for px := clip.Min.X; px < clip.Max.X; px++ {
					// Distance in dab space: unit along the tilt axis,
					// squashed by aspect across it. Sample at pixel centers.
					dx := float32(px) + 0.5 - x
					dy := float32(py) + 0.5 - y
					u := (dx*cosA + dy*sinA) / radius
					v := (dy*cosA - dx*sinA) * aspect / radius
					dist := float32(math.Sqrt(float64(u*u + v*v)))
					a := alpha * dabFalloff(dist, hardness)
					if a <= 0 {
						continue
					}
					lx := px - t.tx*TileSize
					ly := py - t.ty*TileSize
					blendPixel(t.pixels, (ly*TileSize+lx)*4, r, g, b, a)
					changed = true
				}
			}
			if changed {
				s.onUpdateTile(s, t)
			}
		}
	}
}

// blendPixel composites a straight-alpha source color over the premultiplied
// pixel at pix[off:off+4].
func blendPixel(pix []byte, off int, r, g, b, a float32) {
	inv := 1 - a
	pix[off+0] = blendByte(r*a, inv, pix[off+0])
	pix[off+1] = blendByte(g*a, inv, pix[off+1])
	pix[off+2] = blendByte(b*a, inv, pix[off+2])
	pix[off+3] = blendByte(a, inv, pix[off+3])
}

func blendByte(src, inv float32, dst byte) byte {
	v := src*255 + inv*float32(dst)
	if v > 255 {
		v = 255
	}
	return byte(v + 0.5)
}

// loadImage replaces the surface content with img, clearing first and then
// allocating and filling tiles for the covered region. Pixels outside the
// surface bounds are dropped.
func (s *Surface) loadImage(img image.Image) {
	s.clear()

	bounds := img.Bounds().Sub(img.Bounds().Min).Intersect(s.Bounds())
	if bounds.Empty() {
		return
	}

	// Normalize to premultiplied RGBA with a (0,0) origin.
	src := image.NewRGBA(bounds)
	draw.Draw(src, bounds, img, img.Bounds().Min, draw.Src)

	tx1, ty1 := (bounds.Max.X-1)/TileSize, (bounds.Max.Y-1)/TileSize
	for ty := 0; ty <= ty1; ty++ {
		for tx := 0; tx <= tx1; tx++ {
			t := s.tileAt(tx, ty)
			clip := t.Bounds().Intersect(bounds)
			for py := clip.Min.Y; py < clip.Max.Y; py++ {
				srcOff := src.PixOffset(clip.Min.X, py)
				dstOff := ((py-t.ty*TileSize)*TileSize + (clip.Min.X - t.tx*TileSize)) * 4
				copy(t.pixels[dstOff:dstOff+clip.Dx()*4], src.Pix[srcOff:srcOff+clip.Dx()*4])
			}
			s.onUpdateTile(s, t)
		}
	}
}

// renderImage composites every allocated tile into a straight-alpha image of
// the surface's size.
func (s *Surface) renderImage() *image.NRGBA {
	out := image.NewNRGBA(s.Bounds())
	for _, t := range s.tiles {
		clip := t.Bounds().Intersect(s.Bounds())
		for py := clip.Min.Y; py < clip.Max.Y; py++ {
			for px := clip.Min.X; px < clip.Max.X; px++ {
				srcOff := ((py-t.ty*TileSize)*TileSize + (px - t.tx*TileSize)) * 4
				a := t.pixels[srcOff+3]
				dstOff := out.PixOffset(px, py)
				if a == 0 {
					continue
				}
				// premultiplied -> straight alpha
				out.Pix[dstOff+0] = unmultiplyByte(t.pixels[srcOff+0], a)
				out.Pix[dstOff+1] = unmultiplyByte(t.pixels[srcOff+1], a)
				out.Pix[dstOff+2] = unmultiplyByte(t.pixels[srcOff+2], a)
				out.Pix[dstOff+3] = a
			}
		}
	}
	return out
}

func unmultiplyByte(c, a byte) byte {
	v := (int(c)*255 + int(a)/2) / int(a)
	if v > 255 {
		v = 255
	}
	return byte(v)
}
