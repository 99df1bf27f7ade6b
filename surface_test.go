package easel

import (
	"image"
	"image/color"
	"testing"
)

// eventLog records render events for assertions.
type eventLog struct {
	created []*Tile
	updated []*Tile
	cleared int
}

func (l *eventLog) attach(s *Surface) {
	s.onNewTile = func(_ *Surface, t *Tile) { l.created = append(l.created, t) }
	s.onUpdateTile = func(_ *Surface, t *Tile) { l.updated = append(l.updated, t) }
	s.onCleared = func(*Surface) { l.cleared++ }
}

func TestTileAtAllocatesOnce(t *testing.T) {
	s := newSurface(256, 256)
	var log eventLog
	log.attach(s)

	a := s.tileAt(1, 2)
	b := s.tileAt(1, 2)
	if a != b {
		t.Error("tileAt allocated twice for the same coordinates")
	}
	if len(log.created) != 1 {
		t.Errorf("created events = %d, want 1", len(log.created))
	}
	if got := a.Bounds(); got != image.Rect(64, 128, 128, 192) {
		t.Errorf("Bounds = %v, want (64,128)-(128,192)", got)
	}
}

func TestDrawDabPaintsPixels(t *testing.T) {
	s := newSurface(128, 128)
	var log eventLog
	log.attach(s)

	s.drawDab(32, 32, 10, 1, 0, 0, 1, 1, 1, 0)

	if len(log.created) != 1 {
		t.Fatalf("created events = %d, want 1", len(log.created))
	}
	tile := log.created[0]
	if len(log.updated) == 0 || log.updated[0] != tile {
		t.Fatal("no update event for the painted tile")
	}

	// Center pixel is fully red.
	off := (32*TileSize + 32) * 4
	if tile.pixels[off] != 255 || tile.pixels[off+3] != 255 {
		t.Errorf("center pixel = %v, want opaque red", tile.pixels[off:off+4])
	}
	// A pixel well outside the dab is untouched.
	off = (60*TileSize + 60) * 4
	if tile.pixels[off+3] != 0 {
		t.Errorf("far pixel alpha = %d, want 0", tile.pixels[off+3])
	}
}

func TestDrawDabSpansTiles(t *testing.T) {
	s := newSurface(256, 256)
	var log eventLog
	log.attach(s)

	// Dab centered on the corner shared by four tiles.
	s.drawDab(64, 64, 12, 0, 0, 1, 1, 0.8, 1, 0)

	if len(log.created) != 4 {
		t.Errorf("created events = %d, want 4", len(log.created))
	}
}

func TestDrawDabClippedToSurface(t *testing.T) {
	s := newSurface(100, 100)
	var log eventLog
	log.attach(s)

	// Mostly off-canvas: only the on-canvas part allocates tiles.
	s.drawDab(-5, 50, 8, 1, 1, 1, 1, 0.8, 1, 0)
	if len(log.created) != 1 {
		t.Errorf("created events = %d, want 1", len(log.created))
	}

	// Fully off-canvas: nothing happens.
	log.created = nil
	s.drawDab(-50, -50, 8, 1, 1, 1, 1, 0.8, 1, 0)
	if len(log.created) != 0 {
		t.Errorf("created events = %d, want 0", len(log.created))
	}
}

func TestDrawDabZeroRadiusNoop(t *testing.T) {
	s := newSurface(64, 64)
	var log eventLog
	log.attach(s)
	s.drawDab(32, 32, 0, 1, 1, 1, 1, 0.8, 1, 0)
	if len(log.created) != 0 || len(log.updated) != 0 {
		t.Error("zero-radius dab touched the surface")
	}
}

func TestClearDropsTilesAndNotifies(t *testing.T) {
	s := newSurface(128, 128)
	var log eventLog
	log.attach(s)

	s.drawDab(32, 32, 10, 1, 0, 0, 1, 0.8, 1, 0)
	if s.TileCount() == 0 {
		t.Fatal("no tiles before clear")
	}

	s.clear()
	if s.TileCount() != 0 {
		t.Errorf("TileCount = %d after clear, want 0", s.TileCount())
	}
	if log.cleared != 1 {
		t.Errorf("cleared events = %d, want 1", log.cleared)
	}

	// Repainting allocates fresh tiles.
	s.drawDab(32, 32, 10, 1, 0, 0, 1, 0.8, 1, 0)
	if len(log.created) != 2 {
		t.Errorf("created events = %d, want 2", len(log.created))
	}
}

func TestSetSizeResetsContent(t *testing.T) {
	s := newSurface(128, 128)
	var log eventLog
	log.attach(s)

	s.drawDab(32, 32, 10, 1, 0, 0, 1, 0.8, 1, 0)
	s.setSize(300, 200)

	if w, h := s.Size(); w != 300 || h != 200 {
		t.Errorf("Size = (%d, %d), want (300, 200)", w, h)
	}
	if s.TileCount() != 0 {
		t.Error("resize kept old tiles")
	}
	if log.cleared != 1 {
		t.Errorf("cleared events = %d, want 1", log.cleared)
	}
}

func TestLoadRenderRoundTrip(t *testing.T) {
	s := newSurface(100, 80)

	src := image.NewNRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	s.loadImage(src)

	got := s.renderImage()
	for _, p := range []image.Point{{0, 0}, {50, 40}, {99, 79}} {
		want := src.NRGBAAt(p.X, p.Y)
		if g := got.NRGBAAt(p.X, p.Y); g != want {
			t.Errorf("pixel %v = %v, want %v", p, g, want)
		}
	}
}

func TestLoadImageFiresCreateAndUpdate(t *testing.T) {
	s := newSurface(128, 128)
	var log eventLog
	log.attach(s)

	src := image.NewNRGBA(image.Rect(0, 0, 128, 128))
	s.loadImage(src)

	// 2x2 tile grid: each tile appears once in created and once in updated.
	if len(log.created) != 4 {
		t.Errorf("created events = %d, want 4", len(log.created))
	}
	if len(log.updated) != 4 {
		t.Errorf("updated events = %d, want 4", len(log.updated))
	}
	if log.cleared != 1 {
		t.Errorf("cleared events = %d, want 1", log.cleared)
	}
}

func TestLoadImageClipsToSurface(t *testing.T) {
	s := newSurface(64, 64)
	src := image.NewNRGBA(image.Rect(0, 0, 500, 500))
	s.loadImage(src)
	if s.TileCount() != 1 {
		t.Errorf("TileCount = %d, want 1", s.TileCount())
	}
}

func TestRenderImageEmptySurface(t *testing.T) {
	s := newSurface(50, 40)
	img := s.renderImage()
	if got := img.Bounds(); got != image.Rect(0, 0, 50, 40) {
		t.Errorf("Bounds = %v, want (0,0)-(50,40)", got)
	}
	if img.NRGBAAt(25, 20) != (color.NRGBA{}) {
		t.Error("blank surface rendered non-transparent pixels")
	}
}
