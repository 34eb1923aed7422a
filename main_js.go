package main

import (
	"log"
	"syscall/js"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("glbviewer: ")

	cfg := loadConfig(fetchGet, defaultConfigPath, log.Printf)

	canvas := js.Global().Get("document").Call("getElementById", cfg.Canvas)
	if canvas.IsNull() {
		log.Printf("canvas element #%s not found", cfg.Canvas)
		return
	}
	r, err := newWebGLRenderer(canvas, log.Printf)
	if err != nil {
		log.Print(err)
		return
	}

	win := newBrowserWindow()
	v := newViewer(cfg, win, r, log.Printf)
	defer v.Close()
	bindControls(r, v.controls)

	consoleFn := exposeConsole("viewerConsole", &console{v: v})
	defer consoleFn.Release()

	v.load(fetchGet)
	stop := win.requestAnimationFrame(v.frame)
	defer stop()

	select {}
}
