package easel

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TileSize is the width and height of every surface tile, in pixels.
const TileSize = 64

// Tile is one fixed-size block of the painted surface. The engine owns the
// tile's pixel content; the scene bridge owns its scene membership and draw
// order. Pixels live in a CPU buffer (premultiplied RGBA) and are uploaded to
// a lazily-created GPU texture only when the tile is drawn, so headless code
// paths never touch the GPU.
type Tile struct {
	surface *Surface
	tx, ty  int // tile coordinates within the surface grid

	pixels  []byte        // premultiplied RGBA, TileSize*TileSize*4
	texture *ebiten.Image // created on first Image call
	node    *Node         // created on first Node call
	dirty   bool          // pixels changed since last upload
}

func newTile(s *Surface, tx, ty int) *Tile {
	return &Tile{
		surface: s,
		tx:      tx,
		ty:      ty,
		pixels:  make([]byte, TileSize*TileSize*4),
	}
}

// Surface returns the surface that owns this tile.
func (t *Tile) Surface() *Surface {
	return t.surface
}

// Bounds returns the tile's pixel rectangle within its surface.
func (t *Tile) Bounds() image.Rectangle {
	x := t.tx * TileSize
	y := t.ty * TileSize
	return image.Rect(x, y, x+TileSize, y+TileSize)
}

// Node returns the scene item backing this tile, creating it on first use.
func (t *Tile) Node() *Node {
	if t.node == nil {
		t.node = newTileNode(t)
	}
	return t.node
}

// Z returns the tile's draw order, or 0 if it has never been given one.
func (t *Tile) Z() int {
	if t.node == nil {
		return 0
	}
	return t.node.Z
}

// markDirty flags the pixel buffer as newer than the GPU texture.
func (t *Tile) markDirty() {
	t.dirty = true
}

// Dirty reports whether the tile's pixels await a texture re-upload.
func (t *Tile) Dirty() bool {
	return t.dirty
}

// Image returns the tile's GPU texture, creating it and re-uploading the
// pixel buffer first if needed.
func (t *Tile) Image() *ebiten.Image {
	if t.texture == nil {
		t.texture = ebiten.NewImage(TileSize, TileSize)
		t.dirty = true
	}
	if t.dirty {
		t.texture.WritePixels(t.pixels)
		t.dirty = false
	}
	return t.texture
}

// dispose releases the tile's buffers and GPU texture.
func (t *Tile) dispose() {
	if t.texture != nil {
		t.texture.Deallocate()
		t.texture = nil
	}
	t.pixels = nil
	t.surface = nil
}
