package easel

// SceneBridge keeps a Scene synchronized with an engine's render events:
// newly created tiles are inserted at the bridge's base draw order, updated
// tiles are flagged for texture re-upload, and clearing a surface removes
// every tile the bridge inserted on its behalf.
//
// The bridge holds a non-owning reference to the scene and stays subscribed
// for the engine's lifetime. It is the only component that adds or removes
// tile nodes, so no locking is needed as long as strokes and scene draws run
// on the same goroutine.
type SceneBridge struct {
	scene *Scene
	baseZ int

	// inserted tracks, per surface, exactly the tiles this bridge put into
	// the scene. Cleanup on a clear walks this set rather than the engine's
	// tile table, which is already empty by the time the event arrives.
	inserted map[*Surface][]*Tile
}

// newSceneBridge binds scene to engine's render events. A non-negative
// requestedZ is used verbatim as the base draw order. A negative requestedZ
// selects auto mode: the base becomes one above the highest Z among the
// scene's current items (0 for an empty scene), so painted tiles draw above
// all pre-existing content. The scan runs once, here; never per tile.
func newSceneBridge(scene *Scene, requestedZ int, engine *Engine) *SceneBridge {
	b := &SceneBridge{
		scene:    scene,
		baseZ:    requestedZ,
		inserted: make(map[*Surface][]*Tile),
	}
	if requestedZ < 0 {
		b.baseZ = 0
		for _, item := range scene.Items() {
			if item.Z+1 > b.baseZ {
				b.baseZ = item.Z + 1
			}
		}
	}
	engine.Subscribe(RenderObserver{
		TileCreated:    b.onTileCreated,
		TileUpdated:    b.onTileUpdated,
		SurfaceCleared: b.onSurfaceCleared,
	})
	return b
}

// Scene returns the bound scene.
func (b *SceneBridge) Scene() *Scene {
	return b.scene
}

// BaseZ returns the draw order assigned to every tile this bridge inserts.
// Constant for the bridge's lifetime.
func (b *SceneBridge) BaseZ() int {
	return b.baseZ
}

// onTileCreated inserts the new tile into the scene. The draw order is set
// before insertion so no draw pass ever sees a tile with an unset Z.
func (b *SceneBridge) onTileCreated(s *Surface, t *Tile) {
	n := t.Node()
	n.Z = b.baseZ
	b.inserted[s] = append(b.inserted[s], t)
	b.scene.AddItem(n)
}

// onTileUpdated flags the tile for repaint. No reorder, no reinsert.
func (b *SceneBridge) onTileUpdated(s *Surface, t *Tile) {
	t.Node().MarkDirty()
}

// onSurfaceCleared removes and disposes every tile previously inserted for
// this surface. Tiles inserted for other surfaces are untouched.
func (b *SceneBridge) onSurfaceCleared(s *Surface) {
	for _, t := range b.inserted[s] {
		n := t.Node()
		b.scene.RemoveItem(n)
		n.Dispose()
	}
	delete(b.inserted, s)
}
