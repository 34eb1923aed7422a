package main

import (
	"github.com/seqsense/pcgol/mat"
)

type lightSource interface {
	// radiance returns the light color multiplied by its intensity.
	radiance() mat.Vec3
}

type ambientLight struct {
	object3D
	color     uint32
	intensity float32
}

func newAmbientLight(color uint32, intensity float32) *ambientLight {
	l := &ambientLight{color: color, intensity: intensity}
	l.init("ambientLight", objectLight)
	l.light = l
	return l
}

func (l *ambientLight) radiance() mat.Vec3 {
	return hexToVec3(l.color).Mul(l.intensity)
}

// orthographicCamera describes the volume a directional light shadow covers.
type orthographicCamera struct {
	left, right, top, bottom float32
	near, far                float32
}

type lightShadow struct {
	mapWidth, mapHeight int
	camera              orthographicCamera
}

func defaultLightShadow() lightShadow {
	return lightShadow{
		mapWidth:  512,
		mapHeight: 512,
		camera: orthographicCamera{
			left: -5, right: 5, top: 5, bottom: -5,
			near: 0.5, far: 500,
		},
	}
}

type directionalLight struct {
	object3D
	color      uint32
	intensity  float32
	castShadow bool
	shadow     lightShadow
	target     mat.Vec3
}

func newDirectionalLight(color uint32, intensity float32) *directionalLight {
	l := &directionalLight{
		color:     color,
		intensity: intensity,
		shadow:    defaultLightShadow(),
	}
	l.init("directionalLight", objectLight)
	l.position = mat.Vec3{0, 1, 0}
	l.light = l
	return l
}

func (l *directionalLight) radiance() mat.Vec3 {
	return hexToVec3(l.color).Mul(l.intensity)
}

// direction returns the unit vector pointing from the target to the light.
func (l *directionalLight) direction() mat.Vec3 {
	d := l.worldPosition().Sub(l.target)
	if d.NormSq() == 0 {
		return mat.Vec3{0, 1, 0}
	}
	return d.Normalized()
}

func hexToVec3(c uint32) mat.Vec3 {
	return mat.Vec3{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}
