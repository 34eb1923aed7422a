package main

import (
	webgl "github.com/seqsense/webgl-go"
)

// logGPUInfo reports the GPU and the limits relevant to mesh rendering.
func logGPUInfo(gl *webgl.WebGL, logf logger) {
	defer func() {
		if r := recover(); r != nil {
			logf("failed to get GPU info: %v", r)
		}
	}()

	if ri, ok := gl.GetExtension("WEBGL_debug_renderer_info"); ok {
		logf("GPU: %s %s",
			gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
			gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
		)
	} else {
		logf("GPU: hidden by the browser privacy setting")
	}
	consts := gl.JS()
	dims := gl.GetParameter(consts.Get("MAX_VIEWPORT_DIMS").Int())
	logf("max vertex attribs: %d, max viewport: %dx%d",
		gl.GetParameter(consts.Get("MAX_VERTEX_ATTRIBS").Int()).Int(),
		dims.Index(0).Int(), dims.Index(1).Int(),
	)
}
