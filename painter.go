package easel

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Painter is the application-facing façade over the engine: brush loading,
// stroke input, surface access, and the one-time scene binding. Nearly every
// method forwards to the engine one-to-one.
type Painter struct {
	engine *Engine
	bridge *SceneBridge

	// brushPath is the path of the most recently loaded brush file.
	brushPath string
}

// NewPainter creates a painter with a blank surface of the given pixel size.
func NewPainter(w, h int) *Painter {
	return &Painter{engine: NewEngine(w, h)}
}

// Engine returns the underlying engine, for callers that need direct access.
func (p *Painter) Engine() *Engine {
	return p.engine
}

// BindScene connects the painter's render events to scene and returns the
// bridge handle. A negative z picks the draw order automatically, one above
// the scene's current topmost item. The first call wins: later calls are
// no-ops that return the existing bridge with its scene and draw order
// unchanged.
func (p *Painter) BindScene(scene *Scene, z int) *SceneBridge {
	if p.bridge == nil {
		p.bridge = newSceneBridge(scene, z, p.engine)
	}
	return p.bridge
}

// SetSurfaceSize resizes the surface, dropping its content.
func (p *Painter) SetSurfaceSize(w, h int) {
	p.engine.SetSurfaceSize(w, h)
}

// SurfaceSize returns the surface dimensions in pixels.
func (p *Painter) SurfaceSize() (w, h int) {
	return p.engine.SurfaceSize()
}

// ClearSurface resets the surface to blank.
func (p *Painter) ClearSurface() {
	p.engine.ClearSurface()
}

// ResizeSurface changes the surface size, scaling the existing content to
// fit instead of dropping it.
func (p *Painter) ResizeSurface(w, h int) {
	ow, oh := p.engine.SurfaceSize()
	if ow == w && oh == h {
		return
	}
	src := p.engine.RenderImage()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	p.engine.SetSurfaceSize(w, h)
	p.engine.LoadImage(dst)
}

// LoadBrush reads a brush definition file and makes it the active brush.
// With preserveSize, the brush radius in effect before the load is restored
// afterwards, so switching brushes keeps the visual brush size.
//
// An unopenable path is not an error: the load does nothing and the active
// brush (and ActiveBrush path) stay unchanged.
func (p *Painter) LoadBrush(path string, preserveSize bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var radius float32
	if preserveSize {
		radius, _ = p.engine.BrushValue(SettingRadiusLogarithmic)
	}
	data = append(data, 0)
	if err := p.engine.LoadBrush(data); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[easel] load brush %s: %v\n", path, err)
		return
	}
	p.brushPath = path
	if preserveSize {
		_ = p.engine.SetBrushValue(SettingRadiusLogarithmic, radius)
	}
}

// ActiveBrush returns the path of the most recently loaded brush file, or ""
// if no brush file has been loaded.
func (p *Painter) ActiveBrush() string {
	return p.brushPath
}

// SetBrushColor sets the brush color.
func (p *Painter) SetBrushColor(c color.Color) {
	p.engine.SetBrushColor(c)
}

// LoadImage replaces the surface content with img.
func (p *Painter) LoadImage(img image.Image) {
	p.engine.LoadImage(img)
}

// RenderImage composites the surface into a straight-alpha image.
func (p *Painter) RenderImage() *image.NRGBA {
	return p.engine.RenderImage()
}

// SavePNG writes the rendered surface to path as a PNG.
func (p *Painter) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.engine.RenderImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// StartStroke begins a new stroke.
func (p *Painter) StartStroke() {
	p.engine.StartStroke()
}

// EndStroke finishes the in-progress stroke.
func (p *Painter) EndStroke() {
	p.engine.EndStroke()
}

// StrokeTo extends the stroke to (x, y) with full pressure and no tilt.
func (p *Painter) StrokeTo(x, y float32) {
	p.engine.StrokeTo(x, y)
}

// StrokeToFull extends the stroke to (x, y) with pen pressure and tilt.
func (p *Painter) StrokeToFull(x, y, pressure, xtilt, ytilt float32) {
	p.engine.StrokeToFull(x, y, pressure, xtilt, ytilt)
}

// BrushValue returns the current value of one brush setting.
func (p *Painter) BrushValue(s BrushSetting) (float32, error) {
	return p.engine.BrushValue(s)
}

// SetBrushValue sets one brush setting.
func (p *Painter) SetBrushValue(s BrushSetting, v float32) error {
	return p.engine.SetBrushValue(s, v)
}
