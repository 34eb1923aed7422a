package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	polarEpsilon       = 0.000001
	defaultRotateSpeed = 1.0
	defaultZoomSpeed   = 1.0
	defaultPanSpeed    = 1.0
	defaultKeyPanSpeed = 7.0
	maxWheelSteps      = 3.0
)

type orbitState int

const (
	orbitNone orbitState = iota
	orbitRotate
	orbitPan
	orbitDollyPan
)

type pointerButton int

const (
	buttonPrimary   pointerButton = 0
	buttonAuxiliary pointerButton = 1
	buttonSecondary pointerButton = 2
)

type spherical struct {
	radius, phi, theta float64
}

func sphericalFromVec3(v mat.Vec3) spherical {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(x, z),
		phi:    math.Acos(clamp(y/r, -1, 1)),
	}
}

func (s spherical) vec3() mat.Vec3 {
	sp, cp := math.Sincos(s.phi)
	st, ct := math.Sincos(s.theta)
	return mat.Vec3{
		float32(s.radius * sp * st),
		float32(s.radius * cp),
		float32(s.radius * sp * ct),
	}
}

type pointerPos struct {
	x, y float64
}

// orbitControls rotates the camera around a target point.
// Input handlers only accumulate deltas; update applies them.
type orbitControls struct {
	camera *perspectiveCamera
	target mat.Vec3

	enabled       bool
	enableRotate  bool
	enableZoom    bool
	enablePan     bool
	enableKeys    bool
	enableDamping bool
	dampingFactor float64

	rotateSpeed float64
	zoomSpeed   float64
	panSpeed    float64
	keyPanSpeed float64

	minPolarAngle, maxPolarAngle     float64
	minAzimuthAngle, maxAzimuthAngle float64
	minDistance, maxDistance         float64

	viewportHeight float64

	state    orbitState
	pointers map[int]pointerPos
	last     pointerPos
	pinch0   float64
	wheel    wheelNormalizer

	sphericalDelta spherical
	scale          float64
	panOffset      mat.Vec3
}

func newOrbitControls(camera *perspectiveCamera, viewportHeight float64) *orbitControls {
	return &orbitControls{
		camera:          camera,
		target:          camera.target,
		enabled:         true,
		enableRotate:    true,
		enableZoom:      true,
		enablePan:       true,
		enableKeys:      true,
		dampingFactor:   0.05,
		rotateSpeed:     defaultRotateSpeed,
		zoomSpeed:       defaultZoomSpeed,
		panSpeed:        defaultPanSpeed,
		keyPanSpeed:     defaultKeyPanSpeed,
		minPolarAngle:   0,
		maxPolarAngle:   math.Pi,
		minAzimuthAngle: math.Inf(-1),
		maxAzimuthAngle: math.Inf(1),
		minDistance:     0,
		maxDistance:     math.Inf(1),
		viewportHeight:  viewportHeight,
		pointers:        make(map[int]pointerPos),
		scale:           1,
	}
}

func (c *orbitControls) configure(cfg controlsConfig) {
	c.minPolarAngle = cfg.MinPolarAngle
	c.maxPolarAngle = cfg.MaxPolarAngle
	c.enablePan = cfg.EnablePan
	c.enableZoom = cfg.EnableZoom
	c.enableKeys = cfg.EnableKeys
	c.enableDamping = cfg.EnableDamping
	c.dampingFactor = cfg.DampingFactor
}

func (c *orbitControls) setViewportHeight(h float64) {
	c.viewportHeight = h
}

func (c *orbitControls) polarAngle() float64 {
	return sphericalFromVec3(c.camera.position.Sub(c.target)).phi
}

func (c *orbitControls) azimuthalAngle() float64 {
	return sphericalFromVec3(c.camera.position.Sub(c.target)).theta
}

func (c *orbitControls) distance() float64 {
	return float64(c.camera.position.Sub(c.target).Norm())
}

// update applies pending input to the camera.
// It returns true if the camera has moved.
func (c *orbitControls) update() bool {
	prev := c.camera.position

	s := sphericalFromVec3(prev.Sub(c.target))
	if c.enableDamping {
		s.theta += c.sphericalDelta.theta * c.dampingFactor
		s.phi += c.sphericalDelta.phi * c.dampingFactor
	} else {
		s.theta += c.sphericalDelta.theta
		s.phi += c.sphericalDelta.phi
	}
	s.theta = clampAzimuth(s.theta, c.minAzimuthAngle, c.maxAzimuthAngle)
	s.phi = clamp(s.phi, c.minPolarAngle, c.maxPolarAngle)
	s.phi = clamp(s.phi, polarEpsilon, math.Pi-polarEpsilon)
	s.radius = clamp(s.radius*c.scale, c.minDistance, c.maxDistance)

	if c.enableDamping {
		c.target = c.target.Add(c.panOffset.Mul(float32(c.dampingFactor)))
	} else {
		c.target = c.target.Add(c.panOffset)
	}

	c.camera.position = c.target.Add(s.vec3())
	c.camera.lookAt(c.target)

	if c.enableDamping {
		k := 1 - c.dampingFactor
		c.sphericalDelta.theta *= k
		c.sphericalDelta.phi *= k
		c.panOffset = c.panOffset.Mul(float32(k))
	} else {
		c.sphericalDelta = spherical{}
		c.panOffset = mat.Vec3{}
	}
	c.scale = 1

	return c.camera.position.Sub(prev).NormSq() > polarEpsilon
}

func (c *orbitControls) rotateLeft(ang float64) {
	c.sphericalDelta.theta -= ang
}

func (c *orbitControls) rotateUp(ang float64) {
	c.sphericalDelta.phi -= ang
}

// dollyIn moves the camera towards the target if scale < 1.
func (c *orbitControls) dollyIn(scale float64) {
	if !c.enableZoom {
		return
	}
	c.scale *= scale
}

func (c *orbitControls) dollyOut(scale float64) {
	if !c.enableZoom {
		return
	}
	c.scale /= scale
}

// pan moves the target in the camera plane by a screen space offset.
func (c *orbitControls) pan(dx, dy float64) {
	if !c.enablePan || c.viewportHeight <= 0 {
		return
	}
	dist := c.distance() * math.Tan(c.camera.fov/2*math.Pi/180)
	view := c.camera.viewMatrix()
	// Rows of the view rotation are the camera axes in world space.
	right := mat.Vec3{view[0], view[4], view[8]}
	up := mat.Vec3{view[1], view[5], view[9]}
	left := right.Mul(float32(-2 * dx * dist / c.viewportHeight * c.panSpeed))
	upward := up.Mul(float32(2 * dy * dist / c.viewportHeight * c.panSpeed))
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

func (c *orbitControls) zoomScale(steps float64) float64 {
	return math.Pow(0.95, c.zoomSpeed*steps)
}

func (c *orbitControls) pointerDown(id int, x, y float64, button pointerButton) {
	if !c.enabled {
		return
	}
	c.pointers[id] = pointerPos{x, y}
	switch len(c.pointers) {
	case 1:
		c.last = pointerPos{x, y}
		switch button {
		case buttonPrimary:
			if c.enableRotate {
				c.state = orbitRotate
			}
		case buttonSecondary:
			if c.enablePan {
				c.state = orbitPan
			}
		default:
			c.state = orbitNone
		}
	case 2:
		c.state = orbitDollyPan
		c.pinch0 = c.pinchDistance()
		c.last = c.pinchCenter()
	default:
		c.state = orbitNone
	}
}

func (c *orbitControls) pointerMove(id int, x, y float64) {
	if !c.enabled {
		return
	}
	if _, ok := c.pointers[id]; !ok {
		return
	}
	c.pointers[id] = pointerPos{x, y}

	switch c.state {
	case orbitRotate:
		if c.viewportHeight <= 0 {
			break
		}
		dx, dy := (x-c.last.x)*c.rotateSpeed, (y-c.last.y)*c.rotateSpeed
		c.rotateLeft(2 * math.Pi * dx / c.viewportHeight)
		c.rotateUp(2 * math.Pi * dy / c.viewportHeight)
		c.last = pointerPos{x, y}
	case orbitPan:
		c.pan(x-c.last.x, y-c.last.y)
		c.last = pointerPos{x, y}
	case orbitDollyPan:
		if len(c.pointers) != 2 {
			break
		}
		d := c.pinchDistance()
		if c.pinch0 > 0 && d > 0 {
			ratio := math.Pow(d/c.pinch0, c.zoomSpeed)
			c.dollyOut(ratio)
		}
		c.pinch0 = d
		center := c.pinchCenter()
		c.pan(center.x-c.last.x, center.y-c.last.y)
		c.last = center
	}
}

func (c *orbitControls) pointerUp(id int) {
	delete(c.pointers, id)
	switch len(c.pointers) {
	case 0:
		c.state = orbitNone
	case 1:
		for _, p := range c.pointers {
			c.last = p
		}
		if c.enableRotate {
			c.state = orbitRotate
		} else {
			c.state = orbitNone
		}
	}
}

func (c *orbitControls) handleWheel(deltaY float64) {
	if !c.enabled || !c.enableZoom {
		return
	}
	d, _ := c.wheel.Normalize(deltaY)
	steps := math.Min(math.Abs(d), maxWheelSteps)
	switch {
	case d < 0:
		c.dollyIn(c.zoomScale(steps))
	case d > 0:
		c.dollyOut(c.zoomScale(steps))
	}
}

func (c *orbitControls) handleKeyDown(code string) bool {
	if !c.enabled || !c.enableKeys || !c.enablePan {
		return false
	}
	switch code {
	case "ArrowUp":
		c.pan(0, c.keyPanSpeed)
	case "ArrowDown":
		c.pan(0, -c.keyPanSpeed)
	case "ArrowLeft":
		c.pan(c.keyPanSpeed, 0)
	case "ArrowRight":
		c.pan(-c.keyPanSpeed, 0)
	default:
		return false
	}
	return true
}

func (c *orbitControls) pinchDistance() float64 {
	var pp []pointerPos
	for _, p := range c.pointers {
		pp = append(pp, p)
	}
	if len(pp) < 2 {
		return 0
	}
	return math.Hypot(pp[0].x-pp[1].x, pp[0].y-pp[1].y)
}

func (c *orbitControls) pinchCenter() pointerPos {
	var sum pointerPos
	for _, p := range c.pointers {
		sum.x += p.x
		sum.y += p.y
	}
	n := float64(len(c.pointers))
	if n == 0 {
		return sum
	}
	return pointerPos{sum.x / n, sum.y / n}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampAzimuth(theta, min, max float64) float64 {
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		return theta
	}
	return clamp(theta, min, max)
}
