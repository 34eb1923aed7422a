package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

type transformedVec3RandomAccessor struct {
	pc.Vec3RandomAccessor
	trans mat.Mat4
}

func (a *transformedVec3RandomAccessor) Vec3At(i int) mat.Vec3 {
	return a.trans.TransformAffine(a.Vec3RandomAccessor.Vec3At(i))
}

// box3 is an axis-aligned bounding box.
type box3 struct {
	min, max mat.Vec3
}

func emptyBox3() box3 {
	return box3{
		min: mat.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		max: mat.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func (b box3) isEmpty() bool {
	return b.max[0] < b.min[0] || b.max[1] < b.min[1] || b.max[2] < b.min[2]
}

func (b box3) center() mat.Vec3 {
	if b.isEmpty() {
		return mat.Vec3{}
	}
	return b.min.Add(b.max).Mul(0.5)
}

func (b box3) size() mat.Vec3 {
	if b.isEmpty() {
		return mat.Vec3{}
	}
	return b.max.Sub(b.min)
}

func (b box3) union(a box3) box3 {
	return box3{
		min: vec3Min(b.min, a.min),
		max: vec3Max(b.max, a.max),
	}
}

// boxFromObject returns the world space bounds of every mesh under o.
// The box is empty if o has no mesh.
func boxFromObject(o *object3D) (box3, error) {
	b := emptyBox3()
	var err error
	o.traverse(func(obj *object3D) {
		if obj.mesh == nil || err != nil {
			return
		}
		mb, e := obj.mesh.bounds(obj.worldMatrix())
		if e != nil {
			err = e
			return
		}
		b = b.union(mb)
	})
	if err != nil {
		return emptyBox3(), err
	}
	return b, nil
}

func vec3Min(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		out[i] = float32Min(a[i], b[i])
	}
	return out
}

func vec3Max(a, b mat.Vec3) mat.Vec3 {
	var out mat.Vec3
	for i := range out {
		out[i] = float32Max(a[i], b[i])
	}
	return out
}

func float32Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func float32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
