// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// InstancedVertexShader transforms one mesh instance per mat4 attribute.
//
//go:embed instanced.vert
var InstancedVertexShader string

// InstancedFragmentShader shades instanced meshes with a diffuse map and
// a directional Blinn-Phong light.
//
//go:embed instanced.frag
var InstancedFragmentShader string

// SkyboxVertexShader is the vertex shader for the sky cube.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the sky cube.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

// HUDVertexShader is the vertex shader for screen-space text quads.
//
//go:embed hud.vert
var HUDVertexShader string

// HUDFragmentShader is the fragment shader for screen-space text quads.
//
//go:embed hud.frag
var HUDFragmentShader string
