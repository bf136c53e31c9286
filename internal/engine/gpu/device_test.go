package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4Attributes(t *testing.T) {
	attrs := Mat4Attributes(3)

	for i, a := range attrs {
		assert.Equal(t, uint32(3+i), a.Location)
		assert.Equal(t, int32(4), a.Size)
		assert.Equal(t, int32(64), a.Stride)
		assert.Equal(t, i*16, a.Offset)
		assert.Equal(t, uint32(1), a.Divisor, "instance attributes advance once per instance")
	}
}
