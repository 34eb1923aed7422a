package main

import (
	"errors"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"
)

var errContextLost = errors.New("WebGL context lost")

func initShader(gl *webgl.WebGL, typ webgl.ShaderType, name, src string) (webgl.Shader, error) {
	s := gl.CreateShader(typ)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if !gl.GetShaderParameter(s, gl.COMPILE_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Shader(js.Null()), errContextLost
		}
		return webgl.Shader(js.Null()), errors.New("compile failed (" + name + ")")
	}
	return s, nil
}

func initProgram(gl *webgl.WebGL, vs, fs string) (webgl.Program, error) {
	v, err := initShader(gl, gl.VERTEX_SHADER, "VERTEX_SHADER", vs)
	if err != nil {
		return webgl.Program(js.Null()), err
	}
	f, err := initShader(gl, gl.FRAGMENT_SHADER, "FRAGMENT_SHADER", fs)
	if err != nil {
		return webgl.Program(js.Null()), err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)
	if !gl.GetProgramParameter(program, gl.LINK_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Program(js.Null()), errContextLost
		}
		return webgl.Program(js.Null()), errors.New("link failed: " + gl.GetProgramInfoLog(program))
	}
	return program, nil
}
