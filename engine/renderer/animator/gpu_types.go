package animator

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUInstanceDataSource is the canonical WGSL definition of the InstanceData struct.
// Matches GPUInstanceData layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/instance_data.wgsl
var GPUInstanceDataSource string

// GPUInstanceData is the GPU-aligned representation of per-instance data for models.
// Size: 64 bytes (std430 aligned).
type GPUInstanceData struct {
	Model [16]float32 // offset 0, size 64 (mat4x4<f32>)
}

// Size returns the size of the GPUInstanceData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUInstanceData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstanceData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}

// GPUAnimationDataSource is the canonical WGSL definition of the AnimationData struct.
// Matches GPUAnimationData layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/animation_data.wgsl
var GPUAnimationDataSource string

// GPUAnimationData is the GPU-aligned representation of per-instance animation data for the simple animator.
// Matches the WGSL AnimationData struct layout exactly (see GPUAnimationDataSource).
// Size: 64 bytes (16 floats = 4 × vec4, std430 aligned).
type GPUAnimationData struct {
	RotSpeed [3]float32 // offset 0: rotation speed around X, Y, Z axes (radians per frame)
	_pad0    float32    // offset 12: implicit vec3 pad
	Rot      [3]float32 // offset 16: current rotation angles around X, Y, Z axes
	_pad1    float32    // offset 28: implicit vec3 pad
	Pos      [3]float32 // offset 32: position X, Y, Z
	_pad2    float32    // offset 44: implicit vec3 pad
	Scale    [3]float32 // offset 48: scale X, Y, Z
	_pad3    float32    // offset 60: implicit vec3 pad
}

// Size returns the size of the GPUAnimationData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUAnimationData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUAnimationData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUAnimationData) Marshal() []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.RotSpeed[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.RotSpeed[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.RotSpeed[2]))
	binary.LittleEndian.PutUint32(buf[12:16], 0) // _pad0
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Rot[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Rot[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Rot[2]))
	binary.LittleEndian.PutUint32(buf[28:32], 0) // _pad1
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Pos[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Pos[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Pos[2]))
	binary.LittleEndian.PutUint32(buf[44:48], 0) // _pad2
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.Scale[0]))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.Scale[1]))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(g.Scale[2]))
	binary.LittleEndian.PutUint32(buf[60:64], 0) // _pad3
	return buf
}

// GPUFrustumPlaneSource is the canonical WGSL definition of the FrustumPlane struct.
// Matches GPUFrustumPlane layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/frustum_plane.wgsl
var GPUFrustumPlaneSource string

// GPUFrustumPlane is the GPU-aligned representation of a single view-frustum plane.
// Matches the WGSL FrustumPlane struct layout exactly (see GPUFrustumPlaneSource).
// Size: 16 bytes (vec3 normal + f32 distance, std430 aligned).
type GPUFrustumPlane struct {
	Normal   [3]float32 // offset 0: plane normal (x, y, z)
	Distance float32    // offset 12: signed distance from origin
}

// Size returns the size of the GPUFrustumPlane struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUFrustumPlane) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrustumPlane struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUFrustumPlane) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Distance))
	return buf
}

// GPUGlobalDataSource is the canonical WGSL definition of the GlobalData struct.
// Matches GPUGlobalData layout exactly (112 bytes, std430 aligned).
//
//go:embed assets/simple_globals.wgsl
var GPUGlobalDataSource string

// GPUGlobalData is the GPU-aligned per-frame uniform for the frustum-culled simple compute shader.
// Matches the WGSL GlobalData struct layout exactly (see GPUGlobalDataSource).
// Size: 112 bytes (instance_count u32 + delta_time f32 + bounding_radius f32 + pad + 6 × GPUFrustumPlane).
type GPUGlobalData struct {
	InstanceCount  uint32             // offset 0
	DeltaTime      float32            // offset 4
	BoundingRadius float32            // offset 8
	_padding       float32            // offset 12: pad to 16 bytes before planes array
	Planes         [6]GPUFrustumPlane // offset 16: 6 × 16 bytes = 96 bytes
}

// Size returns the size of the GPUGlobalData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUGlobalData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlobalData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload.
func (g *GPUGlobalData) Marshal() []byte {
	buf := make([]byte, 112)
	binary.LittleEndian.PutUint32(buf[0:4], g.InstanceCount)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.DeltaTime))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.BoundingRadius))
	binary.LittleEndian.PutUint32(buf[12:16], 0) // _padding
	off := 16
	for i := range 6 {
		p := g.Planes[i]
		binary.LittleEndian.PutUint32(buf[off+0:off+4], math.Float32bits(p.Normal[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(p.Normal[1]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(p.Normal[2]))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], math.Float32bits(p.Distance))
		off += 16
	}
	return buf
}

// GPUIndirectArgsSource is the canonical WGSL definition of the IndirectArgs struct.
// Matches GPUIndirectArgs layout exactly (20 bytes).
//
//go:embed assets/indirect_args.wgsl
var GPUIndirectArgsSource string

// GPUIndirectArgs is the GPU-aligned DrawIndexedIndirect arguments written by the compute shader.
// Matches the WGSL IndirectArgs struct layout exactly (see GPUIndirectArgsSource).
// Size: 20 bytes (5 × u32).
type GPUIndirectArgs struct {
	IndexCount    uint32 // offset 0: number of indices per instance
	InstanceCount uint32 // offset 4: number of visible instances (written by compute shader)
	FirstIndex    uint32 // offset 8: offset into the index buffer
	BaseVertex    int32  // offset 12: added to each index value (signed)
	FirstInstance uint32 // offset 16: first instance ID
}

// Size returns the size of the GPUIndirectArgs struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUIndirectArgs) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUIndirectArgs struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte buffer ready for GPU upload.
func (g *GPUIndirectArgs) Marshal() []byte {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint32(buf[0:4], g.IndexCount)
	binary.LittleEndian.PutUint32(buf[4:8], g.InstanceCount)
	binary.LittleEndian.PutUint32(buf[8:12], g.FirstIndex)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(g.BaseVertex))
	binary.LittleEndian.PutUint32(buf[16:20], g.FirstInstance)
	return buf
}

// GPUGrassInstanceSource is the canonical WGSL definition of the GrassInstance struct.
// Matches GPUGrassInstance layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/grass_instance.wgsl
var GPUGrassInstanceSource string

// GPUGrassInstance is the GPU-aligned per-blade instance record written by the grass
// init compute pass and read by the grass vertex stage. The record is a single vec4
// lane: the blade's world-space anchor point in xyz and its uniform scale in w. The
// anchor's y component doubles as the reference height for the sway/color height
// weighting, so no extra channel is spent on it.
// Matches the WGSL GrassInstance struct layout exactly (see GPUGrassInstanceSource).
// Size: 16 bytes (vec3 origin + f32 scale, std430 aligned).
type GPUGrassInstance struct {
	Origin [3]float32 // offset 0: world-space anchor of the blade base
	Scale  float32    // offset 12: uniform scale applied to the shared blade mesh
}

// ReferenceHeight returns the surface-relative height reference for this blade,
// which is packed into the y channel of the origin.
//
// Returns:
//   - float32: the reference height used as the zero point for height weighting
func (g *GPUGrassInstance) ReferenceHeight() float32 {
	return g.Origin[1]
}

// Size returns the size of the GPUGrassInstance struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUGrassInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGrassInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUGrassInstance) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Origin[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Origin[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Origin[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Scale))
	return buf
}

// GPUGrassGlobalsSource is the canonical WGSL definition of the GrassGlobals struct.
// Matches GPUGrassGlobals layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/grass_globals.wgsl
var GPUGrassGlobalsSource string

// GPUGrassGlobals is the GPU-aligned per-frame uniform shared by the grass compute
// passes and the grass vertex stage. Time is the only value that changes per frame;
// the rest are field-wide wind and tint parameters.
// Matches the WGSL GrassGlobals struct layout exactly (see GPUGrassGlobalsSource).
// Size: 64 bytes (4 scalars + 2 × vec4 + 2 scalars + pad).
type GPUGrassGlobals struct {
	Time             float32    // offset 0: monotonically increasing time in seconds
	WindFrequency    float32    // offset 4: global sway frequency shared by all blades
	FlutterFrequency float32    // offset 8: base frequency for the hash-seeded flutter wave
	SwayAmplitude    float32    // offset 12: horizontal displacement amplitude at lambda = 1
	BaseTint         [4]float32 // offset 16: RGBA tint at the blade base
	TipTint          [4]float32 // offset 32: RGBA tint at the blade tip
	BaseShade        float32    // offset 48: darkening factor applied to the base tint
	TipShade         float32    // offset 52: brightening factor applied to the tip tint
	_pad0            float32    // offset 56
	_pad1            float32    // offset 60
}

// Size returns the size of the GPUGrassGlobals struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUGrassGlobals) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGrassGlobals struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUGrassGlobals) Marshal() []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.WindFrequency))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.FlutterFrequency))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.SwayAmplitude))
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], math.Float32bits(g.BaseTint[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[32+i*4:36+i*4], math.Float32bits(g.TipTint[i]))
	}
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.BaseShade))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.TipShade))
	binary.LittleEndian.PutUint32(buf[56:60], 0) // _pad0
	binary.LittleEndian.PutUint32(buf[60:64], 0) // _pad1
	return buf
}
