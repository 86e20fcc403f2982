package renderer_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/renderertest"
)

var triangle = []math.Vec3{
	{X: -500, Y: -500, Z: 0},
	{X: 500, Y: -500, Z: 0},
	{X: 0, Y: 500, Z: 0},
}

func TestNewVertexArray(t *testing.T) {
	d := renderertest.NewDevice()

	va, err := renderer.NewVertexArray(d, triangle)
	if err != nil {
		t.Fatalf("NewVertexArray: %v", err)
	}
	if va.ID() == 0 {
		t.Fatal("vertex array has no handle")
	}
	if va.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", va.VertexCount())
	}
	if d.BoundVertexArray != 0 || d.BoundBuffer != 0 {
		t.Errorf("left bound: vao=%d vbo=%d", d.BoundVertexArray, d.BoundBuffer)
	}

	want := []float32{-500, -500, 0, 500, -500, 0, 0, 500, 0}
	var uploaded []float32
	for id, data := range d.BufferData {
		uploaded = data
		if idx, ok := d.BufferAttribute[id]; !ok || idx != 0 {
			t.Errorf("buffer %d not described at attribute 0", id)
		}
	}
	if !reflect.DeepEqual(uploaded, want) {
		t.Errorf("uploaded %v, want %v", uploaded, want)
	}

	va.Release()
	va.Release()
	if d.Live() != 0 {
		t.Errorf("Live() = %d after Release", d.Live())
	}
	if va.VertexCount() != 0 {
		t.Errorf("VertexCount() after Release = %d", va.VertexCount())
	}
	if len(d.Errors) != 0 {
		t.Errorf("device errors: %v", d.Errors)
	}
}

func TestNewVertexArray_Invalid(t *testing.T) {
	tests := [][]math.Vec3{
		nil,
		{},
		triangle[:2],
		append(append([]math.Vec3{}, triangle...), math.Vec3{}),
	}

	for _, vertices := range tests {
		d := renderertest.NewDevice()
		if _, err := renderer.NewVertexArray(d, vertices); !errors.Is(err, renderer.ErrInvalidVertexData) {
			t.Errorf("NewVertexArray(%d vertices) = %v, want ErrInvalidVertexData", len(vertices), err)
		}
		if len(d.Calls) != 0 {
			t.Errorf("NewVertexArray(%d vertices) reached the device: %v", len(vertices), d.Calls)
		}
	}
}

func TestNewVertexBuffer_Empty(t *testing.T) {
	d := renderertest.NewDevice()
	if _, err := renderer.NewVertexBuffer(d, nil); !errors.Is(err, renderer.ErrInvalidVertexData) {
		t.Errorf("NewVertexBuffer(nil) = %v, want ErrInvalidVertexData", err)
	}
}
