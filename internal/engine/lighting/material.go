package lighting

import "github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"

// Material holds the specular response of a surface.
type Material struct {
	Name              string
	Shininess         float32
	SpecularIntensity float32
}

// Surface presets used by the scene.
var (
	Wood    = Material{Name: "wood", Shininess: 30, SpecularIntensity: 0.3}
	Plastic = Material{Name: "plastic", Shininess: 100, SpecularIntensity: 0.8}
	Grass   = Material{Name: "grass", Shininess: 70, SpecularIntensity: 0.8}
	Matte   = Material{Name: "matte"}
)

// Apply sets the specular uniforms of program.
func (m Material) Apply(dev gpu.Device, program uint32) {
	dev.UseProgram(program)
	dev.Uniform1f(dev.UniformLocation(program, "shininess"), m.Shininess)
	dev.Uniform1f(dev.UniformLocation(program, "specularIntensity"), m.SpecularIntensity)
}
