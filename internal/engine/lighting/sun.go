// Package lighting provides the scene light and per-material specular
// settings for the instanced shader.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude turns around Y, latitude is
// the elevation above the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(mgl32.DegToRad(longitude))
	latRad := float64(mgl32.DegToRad(latitude))

	return mgl32.Vec3{
		float32(math.Cos(latRad) * math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}

// Sun is a directional light.
type Sun struct {
	Longitude float32
	Latitude  float32
	Color     mgl32.Vec3
	Ambient   mgl32.Vec3
}

// DefaultSun is a warm afternoon light.
func DefaultSun() Sun {
	return Sun{
		Longitude: 45,
		Latitude:  50,
		Color:     mgl32.Vec3{1.0, 0.95, 0.85},
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.4},
	}
}

// Apply sets the light uniforms of program. eye is the camera position
// used for specular highlights.
func (s Sun) Apply(dev gpu.Device, program uint32, eye mgl32.Vec3) {
	dev.UseProgram(program)
	// the shader expects the direction light travels
	dev.UniformVec3(dev.UniformLocation(program, "lightDir"), SunDirection(s.Longitude, s.Latitude).Mul(-1))
	dev.UniformVec3(dev.UniformLocation(program, "lightColor"), s.Color)
	dev.UniformVec3(dev.UniformLocation(program, "ambientColor"), s.Ambient)
	dev.UniformVec3(dev.UniformLocation(program, "viewPos"), eye)
}
