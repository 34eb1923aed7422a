package main

import (
	"log"
	"math"

	"github.com/seqsense/pcgol/mat"
)

type renderer interface {
	setSize(width, height int)
	setPixelRatio(ratio float64)
	setClearColor(color uint32, alpha float32)
	render(scene *object3D, camera *perspectiveCamera)
}

type window interface {
	innerSize() (width, height int)
	devicePixelRatio() float64
	// onResize registers cb and returns a function removing it.
	onResize(cb func()) (release func())
}

type logger func(format string, args ...interface{})

type viewer struct {
	cfg      viewerConfig
	win      window
	renderer renderer
	logf     logger

	width, height int
	pixelRatio    float64

	scene       *object3D
	camera      *perspectiveCamera
	ambient     *ambientLight
	directional *directionalLight
	controls    *orbitControls

	time          float64
	rotationSpeed float32

	// model is nil until loading completes and never changes afterwards.
	model *object3D
	group *object3D

	loading       <-chan loadResult
	releaseResize func()
}

func newViewer(cfg viewerConfig, win window, r renderer, logf logger) *viewer {
	if logf == nil {
		logf = log.Printf
	}
	v := &viewer{
		cfg:           cfg,
		win:           win,
		renderer:      r,
		logf:          logf,
		scene:         newScene(),
		rotationSpeed: cfg.Animation.RotationSpeed,
	}
	v.width, v.height = win.innerSize()

	v.renderer.setSize(v.width, v.height)
	v.renderer.setPixelRatio(v.cappedPixelRatio())
	v.renderer.setClearColor(cfg.Renderer.ClearColor, cfg.Renderer.ClearAlpha)

	v.camera = newPerspectiveCamera(
		cfg.Camera.Fov, aspectRatio(v.width, v.height), cfg.Camera.Near, cfg.Camera.Far,
	)
	v.camera.position = mat.Vec3(cfg.Camera.Position)
	v.camera.lookAt(mat.Vec3{})
	v.scene.add(&v.camera.object3D)

	v.controls = newOrbitControls(v.camera, float64(v.height))
	v.controls.configure(cfg.Controls)

	ac := cfg.Lights.Ambient
	v.ambient = newAmbientLight(ac.Color, ac.Intensity)
	v.scene.add(&v.ambient.object3D)

	dc := cfg.Lights.Directional
	v.directional = newDirectionalLight(dc.Color, dc.Intensity)
	v.directional.castShadow = dc.CastShadow
	v.directional.shadow.mapWidth = dc.Shadow.MapSize
	v.directional.shadow.mapHeight = dc.Shadow.MapSize
	v.directional.shadow.camera.far = dc.Shadow.Far
	v.directional.shadow.camera.left = dc.Shadow.Left
	v.directional.shadow.camera.top = dc.Shadow.Top
	v.directional.shadow.camera.right = dc.Shadow.Right
	v.directional.shadow.camera.bottom = dc.Shadow.Bottom
	v.directional.position = mat.Vec3(dc.Position)
	v.scene.add(&v.directional.object3D)

	v.releaseResize = win.onResize(v.resize)
	return v
}

// load starts loading the model. The result is applied by a later frame.
func (v *viewer) load(fetch fetchFunc) {
	v.loading = loadModelAsync(fetch, v.cfg.Model.Path)
}

func (v *viewer) cappedPixelRatio() float64 {
	return math.Min(v.win.devicePixelRatio(), v.cfg.Renderer.MaxPixelRatio)
}

func (v *viewer) resize() {
	v.width, v.height = v.win.innerSize()

	v.camera.aspect = aspectRatio(v.width, v.height)
	v.camera.updateProjectionMatrix()
	v.controls.setViewportHeight(float64(v.height))

	v.renderer.setSize(v.width, v.height)
	v.renderer.setPixelRatio(v.cappedPixelRatio())
}

// setModel places the loaded model at the origin inside the rotation group.
// Only the first call has an effect.
func (v *viewer) setModel(m *object3D) bool {
	if v.model != nil || m == nil {
		return false
	}
	s := v.cfg.Model.Scale
	m.scale = mat.Vec3{s, s, s}
	m.rotation = mat.Vec3(v.cfg.Model.Rotation)
	m.traverse(func(o *object3D) {
		if o.mesh != nil {
			o.mesh.color = hexToVec3(v.cfg.Model.Color)
		}
	})

	box, err := boxFromObject(m)
	if err != nil {
		v.logf("failed to compute model bounds: %v", err)
	}
	m.position = m.position.Sub(box.center())

	g := newGroup()
	g.add(m)
	v.scene.add(g)

	v.model = m
	v.group = g
	return true
}

func (v *viewer) loadFailed(err error) {
	v.logf("failed to load model: %v", err)
}

func (v *viewer) pollLoad() {
	if v.loading == nil {
		return
	}
	select {
	case res := <-v.loading:
		v.loading = nil
		if res.err != nil {
			v.loadFailed(res.err)
			return
		}
		v.setModel(res.model)
	default:
	}
}

// frame advances the animation by one step and draws the scene.
// The caller requests the next frame before calling frame, so the clock
// step lands after the request.
func (v *viewer) frame() {
	v.pollLoad()

	v.time += v.cfg.Animation.ClockStep

	v.renderer.render(v.scene, v.camera)
	v.controls.update()

	if v.model != nil {
		v.group.rotation[1] += v.rotationSpeed
	}
}

func (v *viewer) yaw() float32 {
	if v.group == nil {
		return 0
	}
	return v.group.rotation[1]
}

func (v *viewer) Close() {
	if v.releaseResize != nil {
		v.releaseResize()
		v.releaseResize = nil
	}
}

func aspectRatio(width, height int) float64 {
	if height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}
