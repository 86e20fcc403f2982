// Package renderertest provides a recording renderer.RendererBackend for
// tests that must not touch a real graphics context.
package renderertest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spaghettifunk/hellotriangle/engine/math"
	"github.com/spaghettifunk/hellotriangle/engine/renderer"
)

// Draw is a snapshot of the state the device saw when DrawTriangles ran.
type Draw struct {
	Program     uint32
	VertexArray uint32
	First       int32
	Count       int32
	Uniforms    map[string]math.Mat4
}

type shader struct {
	stage  renderer.ShaderStage
	source string
}

type program struct {
	shaders  []uint32
	linked   bool
	uniforms []string
}

type vertexArray struct {
	buffer     uint32
	attributes map[uint32]bool
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

// Device is a fake graphics device. Handles start at 1 and are never reused.
// Every call is appended to Calls by name; misuse such as destroying an
// unknown handle is appended to Errors instead of panicking.
type Device struct {
	// CompileFunc decides whether a stage compiles. The default accepts any
	// source that declares a #version, has a main function and balanced braces.
	CompileFunc func(stage renderer.ShaderStage, source string) (bool, string)
	// LinkLog, when non-empty, makes every link fail with this diagnostic.
	LinkLog string

	Calls  []string
	Errors []string

	CurrentProgram    uint32
	BoundVertexArray  uint32
	BoundBuffer       uint32
	ViewportSize      [2]int32
	ClearColor        renderer.Color
	Draws             []Draw
	BufferData        map[uint32][]float32
	BufferAttribute   map[uint32]uint32
	ProgramActivation int

	next         uint32
	shaders      map[uint32]*shader
	infoLogs     map[uint32]string
	programs     map[uint32]*program
	buffers      map[uint32]bool
	vertexArrays map[uint32]*vertexArray
	uniformNames map[uint32]map[int32]string
	uniforms     map[uint32]map[string]math.Mat4
}

var _ renderer.RendererBackend = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		BufferData:      make(map[uint32][]float32),
		BufferAttribute: make(map[uint32]uint32),
		shaders:         make(map[uint32]*shader),
		infoLogs:        make(map[uint32]string),
		programs:        make(map[uint32]*program),
		buffers:         make(map[uint32]bool),
		vertexArrays:    make(map[uint32]*vertexArray),
		uniformNames:    make(map[uint32]map[int32]string),
		uniforms:        make(map[uint32]map[string]math.Mat4),
	}
}

// Live returns the number of device objects created and not yet destroyed.
func (d *Device) Live() int {
	return len(d.shaders) + len(d.programs) + len(d.buffers) + len(d.vertexArrays)
}

// LiveShaders returns the number of stage objects not yet destroyed.
func (d *Device) LiveShaders() int {
	return len(d.shaders)
}

// Called reports whether name appears in Calls.
func (d *Device) Called(name string) bool {
	for _, c := range d.Calls {
		if c == name {
			return true
		}
	}
	return false
}

func (d *Device) record(name string) {
	d.Calls = append(d.Calls, name)
}

func (d *Device) fail(format string, args ...interface{}) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) ShaderCreate(stage renderer.ShaderStage) uint32 {
	d.record("ShaderCreate")
	id := d.handle()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Device) ShaderCompile(id uint32, source string) bool {
	d.record("ShaderCompile")
	s, ok := d.shaders[id]
	if !ok {
		d.fail("compile of unknown shader %d", id)
		return false
	}
	s.source = source

	compile := d.CompileFunc
	if compile == nil {
		compile = Validate
	}
	ok, log := compile(s.stage, source)
	d.infoLogs[id] = log
	return ok
}

func (d *Device) ShaderInfoLog(id uint32) string {
	d.record("ShaderInfoLog")
	return d.infoLogs[id]
}

func (d *Device) ShaderDestroy(id uint32) {
	d.record("ShaderDestroy")
	if _, ok := d.shaders[id]; !ok {
		d.fail("destroy of unknown shader %d", id)
		return
	}
	delete(d.shaders, id)
	delete(d.infoLogs, id)
}

func (d *Device) ProgramCreate() uint32 {
	d.record("ProgramCreate")
	id := d.handle()
	d.programs[id] = &program{}
	return id
}

func (d *Device) ProgramAttach(programID, shaderID uint32) {
	d.record("ProgramAttach")
	p, ok := d.programs[programID]
	if !ok {
		d.fail("attach to unknown program %d", programID)
		return
	}
	if _, ok := d.shaders[shaderID]; !ok {
		d.fail("attach of unknown shader %d", shaderID)
		return
	}
	p.shaders = append(p.shaders, shaderID)
}

func (d *Device) ProgramLink(programID uint32) bool {
	d.record("ProgramLink")
	p, ok := d.programs[programID]
	if !ok {
		d.fail("link of unknown program %d", programID)
		return false
	}
	if d.LinkLog != "" {
		d.infoLogs[programID] = d.LinkLog
		return false
	}

	stages := map[renderer.ShaderStage]bool{}
	p.uniforms = nil
	for _, id := range p.shaders {
		s := d.shaders[id]
		stages[s.stage] = true
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			p.uniforms = append(p.uniforms, m[1])
		}
	}
	if !stages[renderer.ShaderStageVertex] || !stages[renderer.ShaderStageFragment] {
		d.infoLogs[programID] = "error: program needs a vertex and a fragment shader"
		return false
	}
	p.linked = true
	return true
}

func (d *Device) ProgramInfoLog(programID uint32) string {
	d.record("ProgramInfoLog")
	return d.infoLogs[programID]
}

func (d *Device) ProgramDestroy(programID uint32) {
	d.record("ProgramDestroy")
	if _, ok := d.programs[programID]; !ok {
		d.fail("destroy of unknown program %d", programID)
		return
	}
	delete(d.programs, programID)
	delete(d.infoLogs, programID)
	delete(d.uniforms, programID)
	delete(d.uniformNames, programID)
	if d.CurrentProgram == programID {
		d.CurrentProgram = 0
	}
}

func (d *Device) ProgramUse(programID uint32) {
	d.record("ProgramUse")
	p, ok := d.programs[programID]
	if !ok || !p.linked {
		d.fail("use of unlinked program %d", programID)
		return
	}
	d.CurrentProgram = programID
	d.ProgramActivation++
}

func (d *Device) UniformLocation(programID uint32, name string) int32 {
	d.record("UniformLocation")
	p, ok := d.programs[programID]
	if !ok || !p.linked {
		d.fail("uniform lookup on unlinked program %d", programID)
		return -1
	}
	for i, u := range p.uniforms {
		if u == name {
			loc := int32(i)
			if d.uniformNames[programID] == nil {
				d.uniformNames[programID] = make(map[int32]string)
			}
			d.uniformNames[programID][loc] = name
			return loc
		}
	}
	return -1
}

func (d *Device) UniformMat4(location int32, value *math.Mat4) {
	d.record("UniformMat4")
	if location < 0 {
		return
	}
	if d.CurrentProgram == 0 {
		d.fail("uniform upload without a current program")
		return
	}
	name, ok := d.uniformNames[d.CurrentProgram][location]
	if !ok {
		d.fail("upload to unknown uniform location %d", location)
		return
	}
	if d.uniforms[d.CurrentProgram] == nil {
		d.uniforms[d.CurrentProgram] = make(map[string]math.Mat4)
	}
	d.uniforms[d.CurrentProgram][name] = *value
}

func (d *Device) VertexArrayCreate() uint32 {
	d.record("VertexArrayCreate")
	id := d.handle()
	d.vertexArrays[id] = &vertexArray{attributes: make(map[uint32]bool)}
	return id
}

func (d *Device) VertexArrayBind(id uint32) {
	d.record("VertexArrayBind")
	if id != 0 {
		if _, ok := d.vertexArrays[id]; !ok {
			d.fail("bind of unknown vertex array %d", id)
			return
		}
	}
	d.BoundVertexArray = id
}

func (d *Device) VertexArrayDestroy(id uint32) {
	d.record("VertexArrayDestroy")
	if _, ok := d.vertexArrays[id]; !ok {
		d.fail("destroy of unknown vertex array %d", id)
		return
	}
	delete(d.vertexArrays, id)
	if d.BoundVertexArray == id {
		d.BoundVertexArray = 0
	}
}

func (d *Device) VertexBufferCreate() uint32 {
	d.record("VertexBufferCreate")
	id := d.handle()
	d.buffers[id] = true
	return id
}

func (d *Device) VertexBufferBind(id uint32) {
	d.record("VertexBufferBind")
	if id != 0 && !d.buffers[id] {
		d.fail("bind of unknown buffer %d", id)
		return
	}
	d.BoundBuffer = id
}

func (d *Device) VertexBufferLoadStatic(data []float32) {
	d.record("VertexBufferLoadStatic")
	if d.BoundBuffer == 0 {
		d.fail("upload without a bound buffer")
		return
	}
	d.BufferData[d.BoundBuffer] = append([]float32(nil), data...)
}

func (d *Device) VertexBufferDestroy(id uint32) {
	d.record("VertexBufferDestroy")
	if !d.buffers[id] {
		d.fail("destroy of unknown buffer %d", id)
		return
	}
	delete(d.buffers, id)
	if d.BoundBuffer == id {
		d.BoundBuffer = 0
	}
}

func (d *Device) VertexAttributeVec3(index uint32) {
	d.record("VertexAttributeVec3")
	va, ok := d.vertexArrays[d.BoundVertexArray]
	if !ok {
		d.fail("attribute %d described without a bound vertex array", index)
		return
	}
	if d.BoundBuffer == 0 {
		d.fail("attribute %d described without a bound buffer", index)
		return
	}
	va.buffer = d.BoundBuffer
	va.attributes[index] = true
	d.BufferAttribute[d.BoundBuffer] = index
}

func (d *Device) Viewport(width, height int32) {
	d.record("Viewport")
	d.ViewportSize = [2]int32{width, height}
}

func (d *Device) Clear(color renderer.Color) {
	d.record("Clear")
	d.ClearColor = color
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles")
	if d.CurrentProgram == 0 {
		d.fail("draw without a current program")
		return
	}
	va, ok := d.vertexArrays[d.BoundVertexArray]
	if !ok || !va.attributes[0] {
		d.fail("draw without a vertex array feeding attribute 0")
		return
	}
	if int(first+count)*3 > len(d.BufferData[va.buffer]) {
		d.fail("draw of %d vertices overruns buffer %d", first+count, va.buffer)
		return
	}

	uniforms := make(map[string]math.Mat4, len(d.uniforms[d.CurrentProgram]))
	for k, v := range d.uniforms[d.CurrentProgram] {
		uniforms[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.CurrentProgram,
		VertexArray: d.BoundVertexArray,
		First:       first,
		Count:       count,
		Uniforms:    uniforms,
	})
}

// Validate is the default compile check. It is deliberately shallow: enough
// to tell a well-formed GLSL translation unit from a mangled one.
func Validate(stage renderer.ShaderStage, source string) (bool, string) {
	switch {
	case !strings.HasPrefix(strings.TrimSpace(source), "#version"):
		return false, "0:1(1): error: missing #version directive"
	case !strings.Contains(source, "void main("):
		return false, fmt.Sprintf("0:1(1): error: %s shader has no main function", stage)
	case strings.Count(source, "{") != strings.Count(source, "}"):
		return false, "0:1(1): error: syntax error, unexpected end of file"
	case strings.Contains(source, ";;") || strings.Contains(source, "= ;"):
		return false, "0:1(1): error: syntax error, unexpected ';'"
	}
	return true, ""
}
