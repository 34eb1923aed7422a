package main

import (
	"testing"

	"github.com/seqsense/pcgol/mat"
)

func TestConsole(t *testing.T) {
	testCases := map[string]struct {
		loaded   bool
		frames   int
		line     string
		expected string
		err      error
	}{
		"Empty": {
			line: "",
		},
		"Clock": {
			frames:   5,
			line:     "clock",
			expected: "0.100",
		},
		"YawBeforeLoad": {
			frames:   5,
			line:     "yaw",
			expected: "0.000",
		},
		"Yaw": {
			loaded:   true,
			frames:   200,
			line:     "yaw",
			expected: "1.000",
		},
		"Polar": {
			frames:   1,
			line:     "polar",
			expected: "1.047 1.047 1.047 0.000",
		},
		"Size": {
			line:     "size",
			expected: "800.000 600.000 2.000",
		},
		"Camera": {
			line:     "camera",
			expected: "0.000 0.000 2.000",
		},
		"SetCamera": {
			line:     "camera 1 2 3",
			expected: "1.000 2.000 3.000",
		},
		"Model": {
			loaded:   true,
			line:     "model",
			expected: "-10.000 -10.000 -10.000\n10.000 10.000 10.000",
		},
		"ModelNotLoaded": {
			line: "model",
			err:  errModelNotLoaded,
		},
		"RotationSpeed": {
			line:     "rotation_speed",
			expected: "0.005",
		},
		"SetRotationSpeed": {
			line:     "rotation_speed 0.01",
			expected: "0.010",
		},
		"InvalidCommand": {
			line: "select_range 1",
			err:  errInvalidCommand,
		},
		"ArgumentNumber": {
			line: "yaw 1",
			err:  errArgumentNumber,
		},
		"CameraArgumentNumber": {
			line: "camera 1 2",
			err:  errArgumentNumber,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, _, _, _ := newTestViewer(t)
			if tt.loaded {
				v.setModel(newBoxObject(t, mat.Vec3{-1, -1, -1}, mat.Vec3{1, 1, 1}))
			}
			for i := 0; i < tt.frames; i++ {
				v.frame()
			}

			c := &console{v: v}
			res, err := c.Run(tt.line)
			if err != tt.err {
				t.Fatalf("Expected error: %v, got: %v", tt.err, err)
			}
			if res != tt.expected {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.expected, res)
			}
		})
	}
}

func TestConsole_RotationSpeed(t *testing.T) {
	v, _, _, _ := newTestViewer(t)
	v.setModel(newBoxObject(t, mat.Vec3{-1, -1, -1}, mat.Vec3{1, 1, 1}))
	c := &console{v: v}

	if _, err := c.Run("rotation_speed 0.1"); err != nil {
		t.Fatal(err)
	}
	v.frame()
	v.frame()
	if !floatNear(float64(v.yaw()), 0.2, tolerance) {
		t.Errorf("Expected yaw: 0.2, got: %f", v.yaw())
	}
}

func TestConsole_ParseError(t *testing.T) {
	v, _, _, _ := newTestViewer(t)
	c := &console{v: v}
	if _, err := c.Run("rotation_speed fast"); err == nil {
		t.Error("Expected error")
	}
}
