package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

type objectKind int

const (
	objectGroup objectKind = iota
	objectScene
	objectMesh
	objectCamera
	objectLight
)

func (k objectKind) String() string {
	switch k {
	case objectGroup:
		return "Group"
	case objectScene:
		return "Scene"
	case objectMesh:
		return "Mesh"
	case objectCamera:
		return "Camera"
	case objectLight:
		return "Light"
	default:
		return "Unknown"
	}
}

// object3D is a node of the scene graph.
// Local transform is T * Rx * Ry * Rz * S * base.
type object3D struct {
	name     string
	kind     objectKind
	position mat.Vec3
	rotation mat.Vec3 // Euler angles in XYZ order
	scale    mat.Vec3
	base     mat.Mat4

	parent   *object3D
	children []*object3D

	mesh  *mesh
	light lightSource
}

func newObject3D(name string, kind objectKind) *object3D {
	o := &object3D{}
	o.init(name, kind)
	return o
}

func newGroup() *object3D {
	return newObject3D("", objectGroup)
}

func newScene() *object3D {
	return newObject3D("scene", objectScene)
}

func (o *object3D) init(name string, kind objectKind) {
	o.name = name
	o.kind = kind
	o.scale = mat.Vec3{1, 1, 1}
	o.base = identity()
}

// add attaches child to o, detaching it from its previous parent first.
// Adding an object to itself is ignored.
func (o *object3D) add(child *object3D) {
	if child == nil || child == o {
		return
	}
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
}

func (o *object3D) remove(child *object3D) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (o *object3D) traverse(fn func(*object3D)) {
	fn(o)
	for _, c := range o.children {
		c.traverse(fn)
	}
}

func (o *object3D) localMatrix() mat.Mat4 {
	return mat.Translate(o.position[0], o.position[1], o.position[2]).
		MulAffine(eulerXYZ(o.rotation)).
		MulAffine(scaling(o.scale)).
		MulAffine(o.base)
}

func (o *object3D) worldMatrix() mat.Mat4 {
	if o.parent == nil {
		return o.localMatrix()
	}
	return o.parent.worldMatrix().MulAffine(o.localMatrix())
}

func (o *object3D) worldPosition() mat.Vec3 {
	return o.worldMatrix().TransformAffine(mat.Vec3{})
}

func identity() mat.Mat4 {
	return mat.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func scaling(s mat.Vec3) mat.Mat4 {
	return mat.Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}

func rotationX(ang float32) mat.Mat4 {
	s, c := sincos(ang)
	return mat.Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func rotationY(ang float32) mat.Mat4 {
	s, c := sincos(ang)
	return mat.Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func rotationZ(ang float32) mat.Mat4 {
	s, c := sincos(ang)
	return mat.Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func eulerXYZ(r mat.Vec3) mat.Mat4 {
	return rotationX(r[0]).MulAffine(rotationY(r[1])).MulAffine(rotationZ(r[2]))
}

func sincos(ang float32) (float32, float32) {
	s, c := math.Sincos(float64(ang))
	return float32(s), float32(c)
}
