package easel

// RenderObserver is a set of callback slots for the engine's render events.
// The engine invokes each non-nil slot synchronously, on the goroutine that
// triggered the mutation, in the order the events were generated. Handlers
// must not re-enter the engine's stroke or clear operations.
//
// TileCreated fires once per tile, the first time a previously blank region
// receives paint; after a clear, repainting the same region fires it again
// for a fresh tile. TileUpdated fires whenever an existing tile's pixels
// change. SurfaceCleared fires after the surface has dropped all its tiles.
type RenderObserver struct {
	TileCreated    func(s *Surface, t *Tile)
	TileUpdated    func(s *Surface, t *Tile)
	SurfaceCleared func(s *Surface)
}

// Subscribe attaches an observer to the engine's render events. Observers
// are notified in subscription order and remain attached for the engine's
// lifetime.
func (e *Engine) Subscribe(o RenderObserver) {
	e.observers = append(e.observers, o)
}

func (e *Engine) notifyTileCreated(s *Surface, t *Tile) {
	for _, o := range e.observers {
		if o.TileCreated != nil {
			o.TileCreated(s, t)
		}
	}
}

func (e *Engine) notifyTileUpdated(s *Surface, t *Tile) {
	for _, o := range e.observers {
		if o.TileUpdated != nil {
			o.TileUpdated(s, t)
		}
	}
}

func (e *Engine) notifySurfaceCleared(s *Surface) {
	for _, o := range e.observers {
		if o.SurfaceCleared != nil {
			o.SurfaceCleared(s)
		}
	}
}
