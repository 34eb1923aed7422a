package main

import (
	"syscall/js"
)

type browserWindow struct {
	w js.Value
}

func newBrowserWindow() *browserWindow {
	return &browserWindow{w: js.Global().Get("window")}
}

func (b *browserWindow) innerSize() (int, int) {
	return b.w.Get("innerWidth").Int(), b.w.Get("innerHeight").Int()
}

func (b *browserWindow) devicePixelRatio() float64 {
	r := b.w.Get("devicePixelRatio")
	if r.IsUndefined() || r.IsNull() {
		return 1
	}
	return r.Float()
}

func (b *browserWindow) onResize(cb func()) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb()
		return nil
	})
	b.w.Call("addEventListener", "resize", fn)
	return func() {
		b.w.Call("removeEventListener", "resize", fn)
		fn.Release()
	}
}

// requestAnimationFrame calls fn before every repaint until the returned
// function is called.
func (b *browserWindow) requestAnimationFrame(fn func()) (cancel func()) {
	var cb js.Func
	var id js.Value
	stopped := false
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if stopped {
			return nil
		}
		id = b.w.Call("requestAnimationFrame", cb)
		fn()
		return nil
	})
	id = b.w.Call("requestAnimationFrame", cb)
	return func() {
		stopped = true
		b.w.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
