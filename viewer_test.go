package main

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/seqsense/pcgol/mat"
)

func newTestViewer(t *testing.T) (*viewer, *fakeWindow, *fakeRenderer, *logRecorder) {
	t.Helper()
	win := newFakeWindow(800, 600, 3)
	r := &fakeRenderer{}
	l := &logRecorder{}
	v := newViewer(defaultConfig(), win, r, l.logf)
	return v, win, r, l
}

func TestViewer_Construction(t *testing.T) {
	v, _, r, _ := newTestViewer(t)

	if r.width != 800 || r.height != 600 {
		t.Errorf("Expected renderer size: 800x600, got: %dx%d", r.width, r.height)
	}
	if r.pixelRatio != 2 {
		t.Errorf("Pixel ratio must be capped to 2, got: %f", r.pixelRatio)
	}
	if r.clearColor != 0xeeeeee || r.clearAlpha != 1 {
		t.Errorf("Expected clear color 0xeeeeee/1, got: %x/%f", r.clearColor, r.clearAlpha)
	}
	if !floatNear(v.camera.aspect, 800.0/600.0, tolerance) {
		t.Errorf("Expected aspect: %f, got: %f", 800.0/600.0, v.camera.aspect)
	}
	if v.camera.fov != 85 || v.camera.near != 0.1 || v.camera.far != 1000 {
		t.Errorf("Unexpected camera parameters: %+v", v.camera)
	}
	if !vec3Near(v.camera.position, mat.Vec3{0, 0, 2}, tolerance) {
		t.Errorf("Unexpected camera position: %v", v.camera.position)
	}

	if v.ambient.intensity != 0.8 || v.ambient.color != 0xffffff {
		t.Errorf("Unexpected ambient light: %x %f", v.ambient.color, v.ambient.intensity)
	}
	d := v.directional
	if d.intensity != 0.6 || !d.castShadow {
		t.Errorf("Unexpected directional light: %f %v", d.intensity, d.castShadow)
	}
	if d.shadow.mapWidth != 1024 || d.shadow.mapHeight != 1024 {
		t.Errorf("Expected shadow map 1024x1024, got: %dx%d", d.shadow.mapWidth, d.shadow.mapHeight)
	}
	expectedShadowCam := orthographicCamera{left: -7, right: 7, top: 7, bottom: -7, near: 0.5, far: 15}
	if d.shadow.camera != expectedShadowCam {
		t.Errorf("Expected shadow camera: %+v, got: %+v", expectedShadowCam, d.shadow.camera)
	}
	if d.position != (mat.Vec3{5, 5, 5}) {
		t.Errorf("Unexpected directional light position: %v", d.position)
	}
}

func TestViewer_BeforeLoad(t *testing.T) {
	v, _, _, _ := newTestViewer(t)

	kinds := map[objectKind]int{}
	for _, c := range v.scene.children {
		kinds[c.kind]++
	}
	if len(v.scene.children) != 3 || kinds[objectCamera] != 1 || kinds[objectLight] != 2 {
		t.Fatalf("Scene must contain camera and two lights, got: %v", kinds)
	}
	if v.group != nil || v.model != nil {
		t.Error("Rotation group must not exist before load")
	}

	for i := 0; i < 10; i++ {
		v.frame()
	}
	if v.yaw() != 0 {
		t.Errorf("Yaw must stay 0 before load, got: %f", v.yaw())
	}
	if len(v.scene.children) != 3 {
		t.Errorf("Frames must not add children, got: %d", len(v.scene.children))
	}
}

func TestViewer_SetModel(t *testing.T) {
	v, _, _, _ := newTestViewer(t)
	m := newBoxObject(t, mat.Vec3{1, 2, 3}, mat.Vec3{2, 4, 7})

	if !v.setModel(m) {
		t.Fatal("First model must be accepted")
	}
	if len(v.scene.children) != 4 {
		t.Fatalf("Expected 4 scene children, got: %d", len(v.scene.children))
	}
	if v.group == nil || v.group.parent != v.scene || m.parent != v.group {
		t.Fatal("Model must be wrapped by the rotation group in the scene")
	}
	if m.scale != (mat.Vec3{10, 10, 10}) {
		t.Errorf("Expected scale 10, got: %v", m.scale)
	}
	if !floatNear(float64(m.rotation[0]), math.Pi/2, tolerance) {
		t.Errorf("Expected X rotation pi/2, got: %v", m.rotation)
	}

	b, err := boxFromObject(m)
	if err != nil {
		t.Fatal(err)
	}
	if c := b.center(); !vec3Near(c, mat.Vec3{}, 1e-3) {
		t.Errorf("Model must be centered at the origin, got: %v", c)
	}
	// scaled, then Y and Z swapped by the rotation
	if s := b.size(); !vec3Near(s, mat.Vec3{10, 40, 20}, 1e-3) {
		t.Errorf("Unexpected model size: %v", s)
	}

	if v.setModel(newBoxObject(t, mat.Vec3{}, mat.Vec3{1, 1, 1})) {
		t.Error("Second model must be ignored")
	}
	if len(v.scene.children) != 4 || v.model != m {
		t.Error("Model must not be replaced")
	}
}

func TestViewer_Rotation(t *testing.T) {
	testCases := map[string]int{
		"1":   1,
		"10":  10,
		"100": 100,
	}
	for name, n := range testCases {
		n := n
		t.Run(name, func(t *testing.T) {
			v, _, r, _ := newTestViewer(t)
			v.setModel(newBoxObject(t, mat.Vec3{-1, -1, -1}, mat.Vec3{1, 1, 1}))
			for i := 0; i < n; i++ {
				v.frame()
			}
			expected := float64(n) * 0.005
			if !floatNear(float64(v.yaw()), expected, 1e-4) {
				t.Errorf("Expected yaw: %f, got: %f", expected, v.yaw())
			}
			if !floatNear(v.time, float64(n)*0.02, 1e-9) {
				t.Errorf("Expected clock: %f, got: %f", float64(n)*0.02, v.time)
			}
			if r.rendered != n {
				t.Errorf("Expected %d renders, got: %d", n, r.rendered)
			}
		})
	}
}

func TestViewer_Resize(t *testing.T) {
	v, win, r, _ := newTestViewer(t)

	win.dpr = 1.5
	win.resize(1024, 512)

	if !floatNear(v.camera.aspect, 2, tolerance) {
		t.Errorf("Expected aspect: 2, got: %f", v.camera.aspect)
	}
	if r.width != 1024 || r.height != 512 {
		t.Errorf("Expected renderer size: 1024x512, got: %dx%d", r.width, r.height)
	}
	if r.pixelRatio != 1.5 {
		t.Errorf("Expected pixel ratio: 1.5, got: %f", r.pixelRatio)
	}
	expected := perspective(85*math.Pi/180, 2, 0.1, 1000)
	if v.camera.projection != expected {
		t.Errorf("Projection matrix must be updated")
	}

	v.Close()
	win.resize(300, 300)
	if r.width != 1024 {
		t.Error("Resize must not be handled after Close")
	}
	if len(win.listeners) != 0 {
		t.Errorf("Resize listener must be released, %d left", len(win.listeners))
	}
	v.Close()
}

func TestViewer_AsyncLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		v, _, r, _ := newTestViewer(t)
		ch := make(chan loadResult, 1)
		v.loading = ch

		v.frame()
		if v.model != nil {
			t.Fatal("Model must be absent until the load completes")
		}
		ch <- loadResult{model: newBoxObject(t, mat.Vec3{0, 0, 0}, mat.Vec3{1, 1, 1})}
		v.frame()
		if v.model == nil {
			t.Fatal("Model must be set by the next frame")
		}
		if v.loading != nil {
			t.Error("Load channel must be released")
		}
		expectedChildren := []int{3, 4}
		for i, n := range expectedChildren {
			if r.children[i] != n {
				t.Errorf("Frame %d: expected %d children, got: %d", i, n, r.children[i])
			}
		}
	})
	t.Run("Failure", func(t *testing.T) {
		v, _, r, l := newTestViewer(t)
		errFetch := errors.New("404 Not Found")
		v.load(func(string) ([]byte, error) {
			return nil, errFetch
		})

		deadline := time.Now().Add(5 * time.Second)
		for v.loading != nil {
			if time.Now().After(deadline) {
				t.Fatal("Timeout")
			}
			v.frame()
			time.Sleep(time.Millisecond)
		}
		for i := 0; i < 5; i++ {
			v.frame()
		}
		if v.model != nil || v.group != nil {
			t.Error("Model must stay absent")
		}
		if len(v.scene.children) != 3 {
			t.Errorf("Expected 3 scene children, got: %d", len(v.scene.children))
		}
		if v.yaw() != 0 {
			t.Errorf("Yaw must stay 0, got: %f", v.yaw())
		}
		if r.rendered < 6 {
			t.Errorf("Render loop must keep running, rendered: %d", r.rendered)
		}
		if len(l.lines) != 1 || !strings.Contains(l.lines[0], "404 Not Found") {
			t.Errorf("Failure must be logged once, got: %v", l.lines)
		}
	})
	t.Run("Malformed", func(t *testing.T) {
		v, _, _, l := newTestViewer(t)
		v.load(func(string) ([]byte, error) {
			return []byte("not a model"), nil
		})
		deadline := time.Now().Add(5 * time.Second)
		for v.loading != nil {
			if time.Now().After(deadline) {
				t.Fatal("Timeout")
			}
			v.frame()
			time.Sleep(time.Millisecond)
		}
		if v.model != nil {
			t.Error("Model must stay absent")
		}
		if len(l.lines) != 1 || !strings.Contains(l.lines[0], "decoding model.glb") {
			t.Errorf("Failure must be logged once, got: %v", l.lines)
		}
	})
}

func TestViewer_ControlsLocked(t *testing.T) {
	v, _, _, _ := newTestViewer(t)
	c := v.controls

	if c.minPolarAngle != math.Pi/3 || c.maxPolarAngle != math.Pi/3 {
		t.Fatalf("Polar angle must be locked to pi/3, got: [%f, %f]", c.minPolarAngle, c.maxPolarAngle)
	}
	if c.enablePan || c.enableZoom || c.enableKeys || c.enableDamping {
		t.Error("Pan, zoom, keys and damping must be disabled")
	}

	v.frame()
	if !floatNear(c.polarAngle(), math.Pi/3, 1e-4) {
		t.Errorf("Polar angle must be clamped, got: %f", c.polarAngle())
	}
	if !floatNear(c.distance(), 2, 1e-4) {
		t.Errorf("Distance must be kept, got: %f", c.distance())
	}
}
