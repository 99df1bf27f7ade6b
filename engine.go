package easel

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Engine is the brush engine: it owns the active surface and brush, turns
// stroke input into dabs composited onto surface tiles, and reports tile
// mutations to subscribed observers. All methods are synchronous and must be
// called from a single goroutine.
type Engine struct {
	surface   *Surface
	brush     *Brush
	observers []RenderObserver

	stroke strokeState
}

// strokeState tracks the in-progress stroke between StrokeTo calls.
type strokeState struct {
	active   bool
	started  bool // at least one point received
	x, y     float32
	pressure float32
	sinceDab float32 // distance traveled since the last dab
}

// NewEngine creates an engine with a blank surface of the given pixel size
// and a default round brush.
func NewEngine(w, h int) *Engine {
	e := &Engine{brush: newBrush()}
	e.surface = newSurface(w, h)
	e.surface.onNewTile = e.notifyTileCreated
	e.surface.onUpdateTile = e.notifyTileUpdated
	e.surface.onCleared = e.notifySurfaceCleared
	return e
}

// Surface returns the engine's active surface.
func (e *Engine) Surface() *Surface {
	return e.surface
}

// SetSurfaceSize resizes the surface. Content is dropped; observers see a
// surface-cleared event.
func (e *Engine) SetSurfaceSize(w, h int) {
	e.surface.setSize(w, h)
}

// SurfaceSize returns the surface dimensions in pixels.
func (e *Engine) SurfaceSize() (w, h int) {
	return e.surface.Size()
}

// ClearSurface resets the surface to blank and notifies observers.
func (e *Engine) ClearSurface() {
	e.surface.clear()
}

// LoadBrush replaces the active brush with the given brush definition blob
// (JSON, optionally NUL-terminated). On error the active brush is unchanged.
func (e *Engine) LoadBrush(data []byte) error {
	return e.brush.load(data)
}

// BrushValue returns the current value of one brush setting.
func (e *Engine) BrushValue(s BrushSetting) (float32, error) {
	if s >= settingCount {
		return 0, fmt.Errorf("easel: unknown brush setting %d", uint8(s))
	}
	return e.brush.value(s), nil
}

// SetBrushValue sets one brush setting.
func (e *Engine) SetBrushValue(s BrushSetting, v float32) error {
	if s >= settingCount {
		return fmt.Errorf("easel: unknown brush setting %d", uint8(s))
	}
	e.brush.setValue(s, v)
	return nil
}

// SetBrushColor sets the brush color.
func (e *Engine) SetBrushColor(c color.Color) {
	e.brush.setColor(c)
}

// LoadImage replaces the surface content with img. Observers see a clear
// followed by tile creation and update events for the covered region.
func (e *Engine) LoadImage(img image.Image) {
	e.surface.loadImage(img)
}

// RenderImage composites the surface into a straight-alpha image.
func (e *Engine) RenderImage() *image.NRGBA {
	return e.surface.renderImage()
}

// StartStroke begins a new stroke. The next StrokeTo stamps the first dab.
func (e *Engine) StartStroke() {
	e.stroke = strokeState{active: true}
}

// EndStroke finishes the in-progress stroke.
func (e *Engine) EndStroke() {
	e.stroke = strokeState{}
}

// StrokeTo extends the stroke to (x, y) with full pressure and no tilt.
func (e *Engine) StrokeTo(x, y float32) {
	e.strokeTo(x, y, 1, 0, 0)
}

// StrokeToFull extends the stroke to (x, y) with the given pen pressure
// (in [0, 1]) and stylus tilt components (each in [-1, 1]).
func (e *Engine) StrokeToFull(x, y, pressure, xtilt, ytilt float32) {
	e.strokeTo(x, y, pressure, xtilt, ytilt)
}

func (e *Engine) strokeTo(x, y, pressure, xtilt, ytilt float32) {
	if !e.stroke.active {
		// Stray point without StartStroke: begin a stroke implicitly.
		e.StartStroke()
	}
	st := &e.stroke

	if !st.started {
		st.started = true
		st.x, st.y, st.pressure = x, y, pressure
		e.stampDab(x, y, pressure, xtilt, ytilt)
		return
	}

	dx := x - st.x
	dy := y - st.y
	dist := float32(math.Hypot(float64(dx), float64(dy)))
	if dist == 0 {
		st.pressure = pressure
		return
	}

	// Stamp dabs at fixed spacing along the segment, carrying the residual
	// distance across calls so short moves accumulate instead of vanishing.
	spacing := e.dabSpacing()
	traveled := float32(0)
	for {
		need := spacing - st.sinceDab
		if traveled+need > dist {
			st.sinceDab += dist - traveled
			break
		}
		traveled += need
		st.sinceDab = 0
		f := traveled / dist
		px := st.x + dx*f
		py := st.y + dy*f
		pp := st.pressure + (pressure-st.pressure)*f
		e.stampDab(px, py, pp, xtilt, ytilt)
	}

	st.x, st.y, st.pressure = x, y, pressure
}

// dabSpacing returns the distance between successive dab centers.
func (e *Engine) dabSpacing() float32 {
	per := e.brush.value(SettingDabsPerActualRadius)
	if per < 0.1 {
		per = 0.1
	}
	spacing := e.brush.radius() / per
	if spacing < 0.5 {
		spacing = 0.5
	}
	return spacing
}

// stampDab composites one dab at (x, y) with the active brush parameters.
func (e *Engine) stampDab(x, y, pressure, xtilt, ytilt float32) {
	if pressure <= 0 {
		return
	}
	if pressure > 1 {
		pressure = 1
	}

	// Pressure response: gain sharpens or flattens how pressure maps to
	// dab strength.
	strength := pressure
	if gain := e.brush.value(SettingPressureGain); gain != 0 {
		strength = float32(math.Pow(float64(pressure), math.Exp(-float64(gain))))
	}

	radius := e.brush.radius() * strength
	alpha := e.brush.value(SettingOpaque) * strength
	r, g, b := e.brush.rgb()

	// Tilt squashes the dab into an ellipse along the tilt direction.
	aspect := float32(1)
	angle := float32(0)
	if tilt := math.Hypot(float64(xtilt), float64(ytilt)); tilt > 0 {
		if tilt > 1 {
			tilt = 1
		}
		aspect = 1 + 1.5*float32(tilt)
		angle = float32(math.Atan2(float64(ytilt), float64(xtilt)))
	}

	e.surface.drawDab(x, y, radius, r, g, b, alpha, e.brush.value(SettingHardness), aspect, angle)
}
