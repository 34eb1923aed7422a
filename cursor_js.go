package main

import (
	"syscall/js"
)

type cursorSetter struct {
	style js.Value
	last  cursor
}

func newCursorSetter(canvas js.Value) *cursorSetter {
	return &cursorSetter{style: canvas.Get("style")}
}

func (s *cursorSetter) set(c cursor) {
	if c == s.last {
		return
	}
	s.style.Set("cursor", string(c))
	s.last = c
}
