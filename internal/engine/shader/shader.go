// Package shader compiles and owns OpenGL shader programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

// Compiler builds shader programs and keeps them by name until Release.
// It is created once per graphics context and passed to whoever draws.
type Compiler struct {
	programs map[string]uint32

	compile       func(vertexSrc, fragmentSrc string) (uint32, error)
	deleteProgram func(program uint32)
}

// NewCompiler returns a Compiler for the current OpenGL context.
func NewCompiler() *Compiler {
	return &Compiler{
		programs:      make(map[string]uint32),
		compile:       CompileProgram,
		deleteProgram: gl.DeleteProgram,
	}
}

// Program returns the named program, compiling it on first use.
func (c *Compiler) Program(name, vertexSrc, fragmentSrc string) (uint32, error) {
	if p, ok := c.programs[name]; ok {
		return p, nil
	}
	p, err := c.compile(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, fmt.Errorf("shader %s: %w", name, err)
	}
	c.programs[name] = p
	logger.Debug("shader program linked", zap.String("name", name), zap.Uint32("program", p))
	return p, nil
}

// Lookup returns a previously compiled program.
func (c *Compiler) Lookup(name string) (uint32, bool) {
	p, ok := c.programs[name]
	return p, ok
}

// Release deletes every program the compiler owns.
func (c *Compiler) Release() {
	for name, p := range c.programs {
		c.deleteProgram(p)
		delete(c.programs, name)
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}
