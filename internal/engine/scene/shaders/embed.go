// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// OrbitVertexShader transforms spheres for the orbit scene.
//
//go:embed orbit.vert
var OrbitVertexShader string

// OrbitFragmentShader shades the bodies and the starfield with
// image-based lighting.
//
//go:embed orbit.frag
var OrbitFragmentShader string
