package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

type perspectiveCamera struct {
	object3D

	fov    float64 // vertical field of view in degrees
	aspect float64
	near   float64
	far    float64

	target mat.Vec3
	up     mat.Vec3

	projection mat.Mat4
}

func newPerspectiveCamera(fov, aspect, near, far float64) *perspectiveCamera {
	c := &perspectiveCamera{
		fov:    fov,
		aspect: aspect,
		near:   near,
		far:    far,
		up:     mat.Vec3{0, 1, 0},
	}
	c.init("camera", objectCamera)
	c.updateProjectionMatrix()
	return c
}

func (c *perspectiveCamera) updateProjectionMatrix() {
	c.projection = perspective(c.fov*math.Pi/180, c.aspect, c.near, c.far)
}

func (c *perspectiveCamera) lookAt(target mat.Vec3) {
	c.target = target
}

// viewMatrix returns the world to camera transform.
func (c *perspectiveCamera) viewMatrix() mat.Mat4 {
	return lookAt(c.worldPosition(), c.target, c.up)
}

// perspective returns a right-handed projection matrix
// mapping the view frustum to the OpenGL clip volume.
func perspective(fovY, aspect, near, far float64) mat.Mat4 {
	f := float32(1 / math.Tan(fovY/2))
	a := float32(aspect)
	n, fr := float32(near), float32(far)
	return mat.Mat4{
		f / a, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(fr + n) / (fr - n), -1,
		0, 0, -2 * fr * n / (fr - n), 0,
	}
}

func lookAt(eye, target, up mat.Vec3) mat.Mat4 {
	z := eye.Sub(target)
	if z.NormSq() == 0 {
		z = mat.Vec3{0, 0, 1}
	}
	z = z.Normalized()
	x := up.Cross(z)
	if x.NormSq() == 0 {
		// up is parallel to the view direction
		x = mat.Vec3{1, 0, 0}.Cross(z)
	}
	x = x.Normalized()
	y := z.Cross(x)
	return mat.Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-dot(x, eye), -dot(y, eye), -dot(z, eye), 1,
	}
}

func dot(a, b mat.Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
