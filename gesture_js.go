package main

import (
	webgl "github.com/seqsense/webgl-go"
)

// bindControls forwards canvas input events to the orbit controls.
func bindControls(r *webglRenderer, c *orbitControls) {
	canvas := r.gl.Canvas
	cur := newCursorSetter(r.canvas)
	cur.set(c.cursor())

	canvas.OnPointerDown(func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		c.pointerDown(e.PointerId, float64(e.OffsetX), float64(e.OffsetY), pointerButton(e.Button))
		cur.set(c.cursor())
	})
	canvas.OnPointerMove(func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		c.pointerMove(e.PointerId, float64(e.OffsetX), float64(e.OffsetY))
	})
	canvas.OnPointerUp(func(e webgl.PointerEvent) {
		e.PreventDefault()
		e.StopPropagation()
		c.pointerUp(e.PointerId)
		cur.set(c.cursor())
	})
	canvas.OnPointerOut(func(e webgl.PointerEvent) {
		c.pointerUp(e.PointerId)
		cur.set(c.cursor())
	})
	canvas.OnWheel(func(e webgl.WheelEvent) {
		if !c.enableZoom {
			return
		}
		e.PreventDefault()
		e.StopPropagation()
		c.handleWheel(e.DeltaY)
	})
	canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	canvas.OnKeyDown(func(e webgl.KeyboardEvent) {
		if c.handleKeyDown(e.Code) {
			e.PreventDefault()
			e.StopPropagation()
		}
	})
}
