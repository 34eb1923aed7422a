package main

type cursor string

const (
	cursorAuto     cursor = "auto"
	cursorGrab     cursor = "grab"
	cursorGrabbing cursor = "grabbing"
	cursorMove     cursor = "move"
)

// cursor returns the pointer style for the current interaction.
func (c *orbitControls) cursor() cursor {
	if !c.enabled {
		return cursorAuto
	}
	switch c.state {
	case orbitRotate:
		return cursorGrabbing
	case orbitPan, orbitDollyPan:
		return cursorMove
	}
	if c.enableRotate {
		return cursorGrab
	}
	return cursorAuto
}
