package easel

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is a flat container of drawable items, each with an independent draw
// order. The scene bridge inserts and removes tile nodes; applications may
// add their own sprite nodes alongside them.
type Scene struct {
	items []*Node

	// drawBuf is the reused z-sorted traversal order, rebuilt each Draw.
	drawBuf []*Node

	// ClearColor fills the target before items draw. Zero value draws
	// nothing (fully transparent).
	ClearColor Color
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddItem appends an item to the scene. Panics if n is nil or already
// disposed. Adding the same node twice is a programming error; the scene does
// not deduplicate.
func (s *Scene) AddItem(n *Node) {
	if n == nil {
		panic("easel: cannot add nil item")
	}
	if n.disposed {
		panic("easel: cannot add disposed item")
	}
	s.items = append(s.items, n)
}

// RemoveItem detaches an item from the scene. No-op if the item is absent.
func (s *Scene) RemoveItem(n *Node) {
	for i, it := range s.items {
		if it == n {
			// copy+nil to avoid retaining a dangling pointer in the
			// backing array
			copy(s.items[i:], s.items[i+1:])
			s.items[len(s.items)-1] = nil
			s.items = s.items[:len(s.items)-1]
			return
		}
	}
}

// Items returns the scene's items in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Items() []*Node {
	return s.items
}

// Len returns the number of items in the scene.
func (s *Scene) Len() int {
	return len(s.items)
}

// MaxZ returns the highest draw order among the scene's items, or ok=false
// for an empty scene.
func (s *Scene) MaxZ() (z int, ok bool) {
	for i, it := range s.items {
		if i == 0 || it.Z > z {
			z = it.Z
		}
	}
	return z, len(s.items) > 0
}

// Draw composites every visible item onto target in draw order: ascending Z,
// insertion order within equal Z. Dirty tile textures are re-uploaded here,
// immediately before use.
func (s *Scene) Draw(target *ebiten.Image) {
	if s.ClearColor != (Color{}) {
		target.Fill(s.ClearColor.toRGBA())
	}
	s.sortItems()
	for _, n := range s.drawBuf {
		if !n.Visible || n.disposed || n.Alpha <= 0 {
			continue
		}
		img := n.image
		if n.tile != nil {
			img = n.tile.Image()
		}
		if img == nil {
			continue
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(n.X, n.Y)
		if n.Alpha < 1 {
			op.ColorScale.ScaleAlpha(float32(n.Alpha))
		}
		target.DrawImage(img, &op)
	}
}

// sortItems refreshes drawBuf with the z-sorted traversal order. The sort is
// stable so equal-Z items keep their insertion order. Rebuilt every Draw:
// item Z values may change between frames and item counts stay small.
func (s *Scene) sortItems() {
	s.drawBuf = s.drawBuf[:0]
	s.drawBuf = append(s.drawBuf, s.items...)
	sort.SliceStable(s.drawBuf, func(i, j int) bool {
		return s.drawBuf[i].Z < s.drawBuf[j].Z
	})
}
