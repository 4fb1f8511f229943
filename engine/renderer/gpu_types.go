package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LineShaderSource is the WGSL line-list shader. Its VertexInput matches LineVertex and its
// View uniform matches ViewUniform.
//
//go:embed assets/lines.wgsl
var LineShaderSource string

// LineVertexSize is the byte size of a marshaled LineVertex.
const LineVertexSize = 28

// ViewUniformSize is the byte size of a marshaled ViewUniform.
const ViewUniformSize = 64

// LineVertex is one end of a line segment.
type LineVertex struct {
	Position [3]float32 // offset  0: world-space position (12 bytes)
	Color    [4]float32 // offset 12: RGBA color (16 bytes)
}

// Marshal serializes the vertex for GPU upload.
//
// Returns:
//   - []byte: LineVertexSize bytes
func (v LineVertex) Marshal() []byte {
	buf := make([]byte, LineVertexSize)
	v.marshalInto(buf)
	return buf
}

func (v LineVertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Color[3]))
}

// MarshalLines serializes vertices back to back.
//
// Parameters:
//   - vertices: line-list vertices, two per segment
//
// Returns:
//   - []byte: len(vertices) * LineVertexSize bytes
func MarshalLines(vertices []LineVertex) []byte {
	buf := make([]byte, len(vertices)*LineVertexSize)
	for i, v := range vertices {
		v.marshalInto(buf[i*LineVertexSize:])
	}
	return buf
}

// clipSpaceCorrection maps OpenGL clip depth [-w, w] onto the WebGPU range [0, w].
var clipSpaceCorrection = mgl64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ViewUniform is the per-frame camera uniform.
type ViewUniform struct {
	ViewProjection [16]float32 // column-major clip-from-world matrix (64 bytes)
}

// NewViewUniform converts an OpenGL-convention view-projection matrix to the GPU uniform.
//
// Parameters:
//   - viewProjection: projection * view as produced by mgl64
//
// Returns:
//   - ViewUniform: the uniform with depth remapped for WebGPU
func NewViewUniform(viewProjection mgl64.Mat4) ViewUniform {
	m := clipSpaceCorrection.Mul4(viewProjection)
	var u ViewUniform
	for i := range m {
		u.ViewProjection[i] = float32(m[i])
	}
	return u
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: ViewUniformSize bytes
func (u ViewUniform) Marshal() []byte {
	buf := make([]byte, ViewUniformSize)
	for i, f := range u.ViewProjection {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
