package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/texture"
	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/logger"
)

// Model is an imported mesh uploaded as one DrawUnit per submesh.
// The instance capacity is fixed at construction.
type Model struct {
	Name     string
	Units    []*DrawUnit
	Textures []*texture.Texture // declaration order
	Bounds   Bounds

	dev      gpu.Device
	capacity int
}

// New uploads an imported mesh. Each unit is bound to the texture of the
// material its submesh names. Texture pixel data is released once uploaded.
func New(dev gpu.Device, mesh *Mesh, capacity int) (*Model, error) {
	m := &Model{
		Name:     mesh.Path,
		Textures: mesh.Textures,
		Bounds:   mesh.Bounds(),
		dev:      dev,
		capacity: capacity,
	}

	for _, tex := range m.Textures {
		if err := tex.Upload(dev); err != nil {
			m.Release()
			return nil, fmt.Errorf("model %s: %w", mesh.Path, err)
		}
	}

	for i := range mesh.Submeshes {
		sm := &mesh.Submeshes[i]
		u, err := NewDrawUnit(dev, sm, capacity)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("model %s: %w", mesh.Path, err)
		}
		if tex, ok := mesh.Texture(sm.Material); ok {
			u.Texture = tex
		}
		if mat, ok := mesh.Material(sm.Material); ok {
			u.Surface = SurfaceOf(mat)
		}
		m.Units = append(m.Units, u)
	}
	return m, nil
}

// Load imports the mesh at meshPath with textures from materialDir and
// uploads it. The graphics context must be current.
func Load(dev gpu.Device, loader Loader, meshPath, materialDir string, capacity int, opts ImportOptions) (*Model, error) {
	mesh, err := Import(loader, meshPath, materialDir, opts)
	if err != nil {
		return nil, err
	}
	log := logger.Named("model")
	for _, w := range mesh.Warnings {
		log.Debug("import warning", zap.String("mesh", meshPath), zap.String("warning", w))
	}

	m, err := New(dev, mesh, capacity)
	if err != nil {
		return nil, err
	}
	size := m.Bounds.Size()
	log.Info("model loaded",
		zap.String("mesh", meshPath),
		zap.Float32s("size", size[:]),
		zap.Int("submeshes", len(m.Units)),
		zap.Int("textures", len(m.Textures)),
		zap.Int("capacity", capacity),
	)
	return m, nil
}

// Capacity returns the maximum number of instances per draw.
func (m *Model) Capacity() int {
	return m.capacity
}

// DrawInstanced draws every unit once per transform. If the list exceeds
// the capacity nothing is uploaded or drawn and ErrCapacityExceeded is returned.
func (m *Model) DrawInstanced(program uint32, base, view, projection mgl32.Mat4, transforms []mgl32.Mat4) error {
	if len(transforms) > m.capacity {
		return fmt.Errorf("model %s: %d instances, capacity %d: %w", m.Name, len(transforms), m.capacity, ErrCapacityExceeded)
	}
	for _, u := range m.Units {
		u.draw(program, base, view, projection, transforms)
	}
	return nil
}

// Release deletes all GPU resources owned by the model.
func (m *Model) Release() {
	for _, u := range m.Units {
		u.Release()
	}
	for _, t := range m.Textures {
		t.Release(m.dev)
	}
	m.Units = nil
}
