package main

const vsSource = `#version 300 es
layout (location = 0) in vec3 aVertexPosition;
layout (location = 1) in vec3 aVertexNormal;
uniform mat4 uProjectionMatrix;
uniform mat4 uViewMatrix;
uniform mat4 uModelMatrix;
out vec3 vNormal;
void main(void) {
	gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(aVertexPosition, 1.0);
	vNormal = mat3(uModelMatrix) * aVertexNormal;
}
`

const fsSource = `#version 300 es
precision mediump float;
uniform vec3 uAmbientColor;
uniform vec3 uLightColor;
uniform vec3 uLightDirection;
uniform vec3 uBaseColor;
in vec3 vNormal;
out vec4 outColor;
void main(void) {
	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, normalize(uLightDirection)), 0.0);
	vec3 c = uBaseColor * (uAmbientColor + uLightColor * diffuse);
	outColor = vec4(min(c, vec3(1.0)), 1.0);
}
`

const (
	aVertexPosition = 0
	aVertexNormal   = 1
	vertexStride    = 6 * 4
	normalOffset    = 3 * 4
)
