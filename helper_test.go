package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/seqsense/pcgol/mat"
)

const tolerance = 1e-4

func vec3Near(a, b mat.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d < -tol || tol < d {
			return false
		}
	}
	return true
}

func floatNear(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// boxCorners returns the corners and triangle indices of an axis-aligned box.
func boxCorners(min, max mat.Vec3) ([]mat.Vec3, []uint32) {
	var pp []mat.Vec3
	for i := 0; i < 8; i++ {
		p := min
		if i&1 != 0 {
			p[0] = max[0]
		}
		if i&2 != 0 {
			p[1] = max[1]
		}
		if i&4 != 0 {
			p[2] = max[2]
		}
		pp = append(pp, p)
	}
	indices := []uint32{
		0, 2, 1, 1, 2, 3, // -z
		4, 5, 6, 5, 7, 6, // +z
		0, 1, 4, 1, 5, 4, // -y
		2, 6, 3, 3, 6, 7, // +y
		0, 4, 2, 2, 4, 6, // -x
		1, 3, 5, 3, 7, 5, // +x
	}
	return pp, indices
}

func newBoxObject(t *testing.T, min, max mat.Vec3) *object3D {
	t.Helper()
	pp, indices := boxCorners(min, max)
	m, err := newMesh(pp, nil, indices)
	if err != nil {
		t.Fatal(err)
	}
	root := newObject3D("model", objectGroup)
	child := newObject3D("box", objectMesh)
	child.mesh = m
	root.add(child)
	return root
}

type fakeWindow struct {
	width, height int
	dpr           float64
	listeners     map[int]func()
	nextID        int
}

func newFakeWindow(width, height int, dpr float64) *fakeWindow {
	return &fakeWindow{
		width:     width,
		height:    height,
		dpr:       dpr,
		listeners: make(map[int]func()),
	}
}

func (w *fakeWindow) innerSize() (int, int) {
	return w.width, w.height
}

func (w *fakeWindow) devicePixelRatio() float64 {
	return w.dpr
}

func (w *fakeWindow) onResize(cb func()) func() {
	id := w.nextID
	w.nextID++
	w.listeners[id] = cb
	return func() {
		delete(w.listeners, id)
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	for _, cb := range w.listeners {
		cb()
	}
}

type fakeRenderer struct {
	width, height int
	pixelRatio    float64
	clearColor    uint32
	clearAlpha    float32
	rendered      int
	children      []int
}

func (r *fakeRenderer) setSize(width, height int) {
	r.width, r.height = width, height
}

func (r *fakeRenderer) setPixelRatio(ratio float64) {
	r.pixelRatio = ratio
}

func (r *fakeRenderer) setClearColor(color uint32, alpha float32) {
	r.clearColor, r.clearAlpha = color, alpha
}

func (r *fakeRenderer) render(scene *object3D, camera *perspectiveCamera) {
	r.rendered++
	r.children = append(r.children, len(scene.children))
}

type logRecorder struct {
	lines []string
}

func (l *logRecorder) logf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
