package renderer

import (
	"fmt"

	"github.com/spaghettifunk/hellotriangle/engine/math"
)

// positionAttribute is the `layout (location = 0)` input of the vertex shader.
const positionAttribute uint32 = 0

// VertexBuffer is a device buffer holding tightly packed vec3 positions.
type VertexBuffer struct {
	backend BufferBackend
	id      uint32
	count   int
}

// NewVertexBuffer allocates a buffer, binds it and uploads vertices. The
// buffer is left bound so the caller can describe its layout.
func NewVertexBuffer(backend BufferBackend, vertices []math.Vec3) (*VertexBuffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInvalidVertexData)
	}

	data := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		data = append(data, v.X, v.Y, v.Z)
	}

	id := backend.VertexBufferCreate()
	backend.VertexBufferBind(id)
	backend.VertexBufferLoadStatic(data)

	return &VertexBuffer{
		backend: backend,
		id:      id,
		count:   len(vertices),
	}, nil
}

func (b *VertexBuffer) ID() uint32 {
	return b.id
}

func (b *VertexBuffer) Release() {
	if b.id == 0 {
		return
	}
	b.backend.VertexBufferDestroy(b.id)
	b.id = 0
}

// VertexArray binds one VertexBuffer to the position attribute so the
// pair can be bound as a unit for a triangle-list draw.
type VertexArray struct {
	backend BufferBackend
	id      uint32
	buffer  *VertexBuffer
}

// NewVertexArray uploads vertices as a triangle list. The number of vertices
// must be a positive multiple of three.
func NewVertexArray(backend BufferBackend, vertices []math.Vec3) (*VertexArray, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices do not form a triangle list", ErrInvalidVertexData, len(vertices))
	}

	id := backend.VertexArrayCreate()
	backend.VertexArrayBind(id)

	buffer, err := NewVertexBuffer(backend, vertices)
	if err != nil {
		backend.VertexArrayBind(0)
		backend.VertexArrayDestroy(id)
		return nil, err
	}
	backend.VertexAttributeVec3(positionAttribute)

	backend.VertexBufferBind(0)
	backend.VertexArrayBind(0)

	return &VertexArray{
		backend: backend,
		id:      id,
		buffer:  buffer,
	}, nil
}

func (va *VertexArray) ID() uint32 {
	return va.id
}

func (va *VertexArray) VertexCount() int {
	if va.buffer == nil {
		return 0
	}
	return va.buffer.count
}

func (va *VertexArray) Bind() {
	va.backend.VertexArrayBind(va.id)
}

func (va *VertexArray) Unbind() {
	va.backend.VertexArrayBind(0)
}

// Release deletes the vertex array and then its buffer. Later calls are no-ops.
func (va *VertexArray) Release() {
	if va.id != 0 {
		va.backend.VertexArrayDestroy(va.id)
		va.id = 0
	}
	if va.buffer != nil {
		va.buffer.Release()
		va.buffer = nil
	}
}
