package main

import (
	"math"
	"strconv"
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"
)

type meshBuffer struct {
	buf      webgl.Buffer
	vertices int
}

type webglRenderer struct {
	gl     *webgl.WebGL
	canvas js.Value
	logf   logger

	program webgl.Program

	uProjectionMatrix webgl.Location
	uViewMatrix       webgl.Location
	uModelMatrix      webgl.Location
	uAmbientColor     webgl.Location
	uLightColor       webgl.Location
	uLightDirection   webgl.Location
	uBaseColor        webgl.Location

	buffers map[*mesh]*meshBuffer

	width, height int
	pixelRatio    float64
}

func newWebGLRenderer(canvas js.Value, logf logger) (*webglRenderer, error) {
	gl, err := webgl.New(canvas)
	if err != nil {
		return nil, err
	}
	program, err := initProgram(gl, vsSource, fsSource)
	if err != nil {
		return nil, err
	}
	r := &webglRenderer{
		gl:                gl,
		canvas:            canvas,
		logf:              logf,
		program:           program,
		uProjectionMatrix: gl.GetUniformLocation(program, "uProjectionMatrix"),
		uViewMatrix:       gl.GetUniformLocation(program, "uViewMatrix"),
		uModelMatrix:      gl.GetUniformLocation(program, "uModelMatrix"),
		uAmbientColor:     gl.GetUniformLocation(program, "uAmbientColor"),
		uLightColor:       gl.GetUniformLocation(program, "uLightColor"),
		uLightDirection:   gl.GetUniformLocation(program, "uLightDirection"),
		uBaseColor:        gl.GetUniformLocation(program, "uBaseColor"),
		buffers:           make(map[*mesh]*meshBuffer),
		pixelRatio:        1,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearDepth(1.0)

	gl.UseProgram(program)
	gl.EnableVertexAttribArray(aVertexPosition)
	gl.EnableVertexAttribArray(aVertexNormal)

	logGPUInfo(gl, logf)
	return r, nil
}

func (r *webglRenderer) setSize(width, height int) {
	r.width, r.height = width, height
	style := r.canvas.Get("style")
	style.Set("width", strconv.Itoa(width)+"px")
	style.Set("height", strconv.Itoa(height)+"px")
	r.updateDrawingBuffer()
}

func (r *webglRenderer) setPixelRatio(ratio float64) {
	r.pixelRatio = ratio
	r.updateDrawingBuffer()
}

func (r *webglRenderer) updateDrawingBuffer() {
	r.gl.Canvas.SetWidth(int(math.Floor(float64(r.width) * r.pixelRatio)))
	r.gl.Canvas.SetHeight(int(math.Floor(float64(r.height) * r.pixelRatio)))
}

func (r *webglRenderer) setClearColor(color uint32, alpha float32) {
	c := hexToVec3(color)
	r.gl.ClearColor(c[0], c[1], c[2], alpha)
}

func (r *webglRenderer) render(scene *object3D, camera *perspectiveCamera) {
	gl := r.gl
	if gl.IsContextLost() {
		return
	}
	gl.Viewport(0, 0, gl.Canvas.Width(), gl.Canvas.Height())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProjectionMatrix, false, camera.projection)
	gl.UniformMatrix4fv(r.uViewMatrix, false, camera.viewMatrix())

	var ambient, lightColor mat.Vec3
	lightDir := mat.Vec3{0, 1, 0}
	var hasDirectional bool
	scene.traverse(func(o *object3D) {
		switch l := o.light.(type) {
		case *ambientLight:
			ambient = ambient.Add(l.radiance())
		case *directionalLight:
			if hasDirectional {
				return
			}
			hasDirectional = true
			lightColor = l.radiance()
			lightDir = l.direction()
		}
	})
	gl.Uniform3fv(r.uAmbientColor, ambient)
	gl.Uniform3fv(r.uLightColor, lightColor)
	gl.Uniform3fv(r.uLightDirection, lightDir)

	scene.traverse(func(o *object3D) {
		if o.mesh == nil {
			return
		}
		mb := r.meshBuffer(o.mesh)
		if mb == nil || mb.vertices == 0 {
			return
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, mb.buf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, vertexStride, 0)
		gl.VertexAttribPointer(aVertexNormal, 3, gl.FLOAT, false, vertexStride, normalOffset)
		gl.UniformMatrix4fv(r.uModelMatrix, false, o.worldMatrix())
		gl.Uniform3fv(r.uBaseColor, o.mesh.color)
		gl.DrawArrays(gl.TRIANGLES, 0, mb.vertices)
	})
}

// meshBuffer uploads m on first use.
func (r *webglRenderer) meshBuffer(m *mesh) *meshBuffer {
	if mb, ok := r.buffers[m]; ok {
		return mb
	}
	data, err := m.interleaved()
	if err != nil {
		r.logf("failed to build vertex buffer: %v", err)
		r.buffers[m] = nil
		return nil
	}
	mb := &meshBuffer{
		buf:      r.gl.CreateBuffer(),
		vertices: len(data) / 6,
	}
	if mb.vertices > 0 {
		r.gl.BindBuffer(r.gl.ARRAY_BUFFER, mb.buf)
		r.gl.BufferData(r.gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(data), r.gl.STATIC_DRAW)
	}
	r.buffers[m] = mb
	return mb
}
