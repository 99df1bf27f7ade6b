package easel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeSprite NodeType = iota // renders a caller-provided image
	NodeTypeTile                   // renders a brush-engine tile's pixel buffer
)

// nodeIDCounter is a plain counter (no atomic — easel is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a drawable scene item. A single flat struct is used for all item
// types to avoid interface dispatch on the draw path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Placement
	X, Y float64

	// Z is the item's draw order. Higher values draw on top. Items with
	// equal Z draw in insertion order.
	Z int

	// Visibility
	Visible bool
	Alpha   float64

	// Sprite fields (NodeTypeSprite)
	image *ebiten.Image

	// Tile fields (NodeTypeTile)
	tile *Tile

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Visible = true
}

// NewSprite creates a sprite node that renders the given image.
// A nil image is allowed; the node draws nothing until SetImage is called.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, image: img}
	nodeDefaults(n)
	return n
}

// newTileNode creates the scene item backing a brush-engine tile. The node's
// position is fixed to the tile's pixel origin; Z is assigned by the scene
// bridge before insertion.
func newTileNode(t *Tile) *Node {
	origin := t.Bounds().Min
	n := &Node{
		Name: "tile",
		Type: NodeTypeTile,
		X:    float64(origin.X),
		Y:    float64(origin.Y),
		tile: t,
	}
	nodeDefaults(n)
	return n
}

// SetImage replaces a sprite node's image.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
}

// Image returns the sprite node's image, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// Tile returns the backing tile for a NodeTypeTile node, or nil.
func (n *Node) Tile() *Tile {
	return n.tile
}

// MarkDirty flags the node's visual content as stale so the next Draw
// refreshes it. For tile nodes this schedules a texture re-upload.
func (n *Node) MarkDirty() {
	if n.tile != nil {
		n.tile.markDirty()
	}
}

// Dispose releases the node's resources. Disposing a tile node deallocates
// the tile's GPU texture. The caller removes the node from its scene first;
// a disposed node left in a scene is skipped during Draw. Safe to call more
// than once.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	if n.tile != nil {
		n.tile.dispose()
		n.tile = nil
	}
	n.image = nil
	n.ID = 0
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
