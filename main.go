//go:build !js
// +build !js

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "glbviewer runs in a browser; build with GOOS=js GOARCH=wasm")
	os.Exit(1)
}
