// Package easel bridges a tile-based brush engine to a retained scene of
// drawable items, for [Ebitengine] applications that need freehand painting.
//
// The engine rasterizes brush strokes into fixed-size tiles and reports what
// it touched through three render events: tile created, tile updated, and
// surface cleared. A scene bridge subscribes to those events and keeps a
// [Scene] in sync — new tiles are inserted at a stable draw order above any
// pre-existing scene content, updated tiles are flagged for texture re-upload,
// and clearing the surface removes every tile the bridge put there.
//
// # Quick start
//
// Most applications talk to a [Painter], which owns the engine and wires the
// bridge on first use:
//
//	painter := easel.NewPainter(800, 600)
//	scene := easel.NewScene()
//	painter.BindScene(scene, -1) // -1: draw above existing items
//
//	painter.LoadBrush("brushes/charcoal.myb", true)
//	painter.SetBrushColor(color.RGBA{30, 30, 30, 255})
//
//	painter.StartStroke()
//	painter.StrokeTo(120, 80)
//	painter.StrokeTo(190, 140)
//	painter.EndStroke()
//
// Inside an [ebiten.Game], call [Scene.Draw] from Draw to composite the
// painted tiles (and any other nodes) onto the screen in z order.
//
// Applications that need direct control can construct an [Engine] themselves
// and attach a [RenderObserver]; the [Painter] and bridge are conveniences
// layered on top, not a requirement.
//
// All of easel is single-threaded: events are delivered synchronously on the
// goroutine that processes the stroke, in generation order.
//
// [Ebitengine]: https://ebitengine.org
package easel
