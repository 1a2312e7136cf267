package animator

import (
	"github.com/Carmen-Shannon/meadow-go/engine/model"
	"github.com/Carmen-Shannon/meadow-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// animator is the implementation of the Animator interface.
type animator struct {
	backendType AnimatorBackendType
	backend     AnimatorBackend
	model       model.Model
}

// Animator defines the public interface for the animation system.
//
// The Animator manages per-instance animation state and stages GPU buffer writes each frame
// for processing by a compute shader. It delegates to an AnimatorBackend which provides
// the actual implementation for either simple instanced animation or a grass field.
//
// Methods specific to a particular backend type will no-op when called on an Animator
// using a different backend. The simple-only methods (SetInstanceRotation, SetFrustumPlanes)
// no-op on grass backends, and the grass-only methods (SetDispatchExtent, SetFieldParams,
// SetBladeInstance, SeedBlades, NeedsInit) no-op on simple backends.
type Animator interface {
	// MaxInstances returns the maximum number of instances this animator can manage.
	//
	// Returns:
	//   - uint32: the maximum number of instances supported
	MaxInstances() uint32

	// ComputeBindGroupProvider returns the BindGroupProvider for the compute shader.
	// The provider holds layout info and GPU resources needed for the animation compute pass.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the compute shader BindGroupProvider
	ComputeBindGroupProvider() bind_group_provider.BindGroupProvider

	// OutputBindGroupProvider returns the BindGroupProvider for the vertex shader.
	// The provider holds the output buffer that the compute shader writes and the vertex shader reads.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the output BindGroupProvider
	OutputBindGroupProvider() bind_group_provider.BindGroupProvider

	// AddInstance registers a new instance with this animator.
	// If the current capacity is exceeded, the backend will automatically grow.
	// On grass backends this is a no-op, since the blade population is fixed at
	// the dispatch extent's volume.
	//
	// Returns:
	//   - uint32: the index of the newly registered instance
	//   - error: an error if the instance could not be added
	AddInstance() (uint32, error)

	// TODO: experimental method for managing the Animator's instance size.
	// Grow increases the maximum instance capacity to newMax, preserving all existing data.
	// CPU-side slices are reallocated and MinBindingSizes updated; the needsRebuild flag is
	// set so the render thread recreates GPU buffers on the next frame.
	// No-op if newMax is less than or equal to the current capacity, and on grass backends.
	//
	// Parameters:
	//   - newMax: the new maximum number of instances to support
	Grow(newMax uint32)

	// TODO: experimental method for managing the Animator's instance size.
	// RemoveInstance removes the instance at the given index using a swap-remove strategy.
	// Returns the old last index that was swapped and whether a swap occurred.
	//
	// Parameters:
	//   - index: the instance index to remove
	//
	// Returns:
	//   - uint32: the old last index that was swapped into the removed slot (only meaningful when bool is true)
	//   - bool: true if the last instance was swapped into the removed slot
	RemoveInstance(index uint32) (uint32, bool)

	// TODO: experimental method for managing the Animator's instance size.
	// NeedsRebuild reports whether GPU buffers need to be recreated after a Grow.
	//
	// Returns:
	//   - bool: true if a rebuild is pending
	NeedsRebuild() bool

	// TODO: experimental method for managing the Animator's instance size.
	// ClearNeedsRebuild resets the needsRebuild flag.
	ClearNeedsRebuild()

	// InstanceCount returns the current number of registered instances.
	// On grass backends this is the full blade population.
	//
	// Returns:
	//   - uint32: the number of active instances
	InstanceCount() uint32

	// StagedWriteData returns and clears the pending GPU buffer writes.
	// The Renderer should call this to drain staged writes and submit them via WriteBuffers.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the slice of pending buffer writes
	StagedWriteData() []bind_group_provider.BufferWrite

	// Flush stages the dirty instance data as GPU buffer writes.
	// Call this after modifying instance transforms or blade records.
	//
	// Parameters:
	//   - instanceBinding: the bind group binding index for the compute shader's instance buffer, used for staging GPU writes
	//
	// Returns:
	//   - uint32: the number of instances that were flushed
	Flush(instanceBinding int) uint32

	// PrepareFrame advances animation state by deltaTime and stages per-frame uniform data.
	// For grass backends this accumulates field time and stages the GrassGlobals uniform.
	// The binding parameter specifies which bind group index the per-frame data should be written to.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//   - binding: the bind group index for per-frame uniform data in the compute shader, used for staging GPU writes
	PrepareFrame(deltaTime float32, binding int)

	// Release frees all GPU resources held by this animator and its providers.
	Release()

	// BackendType returns the type of backend this animator is using.
	//
	// Returns:
	//   - AnimatorBackendType: the backend type (BackendTypeSimple or BackendTypeGrassField)
	BackendType() AnimatorBackendType

	// SetInstanceTransform sets the position and scale for a specific instance.
	// On grass backends this updates the blade record, taking the uniform blade
	// scale from the x component.
	//
	// Parameters:
	//   - index: the instance index to update
	//   - posXYZ: the position as [3]float32 (x, y, z)
	//   - scaleXYZ: the scale as [3]float32 (x, y, z)
	SetInstanceTransform(index uint32, posXYZ, scaleXYZ [3]float32)

	// SetInstanceRotation sets the rotation speed and current rotation for a specific instance.
	// No-op on grass backends, where yaw is hash-derived in the vertex stage.
	//
	// Parameters:
	//   - index: the instance index to update
	//   - rotSpeedXYZ: rotation speed in radians per frame around each axis as [3]float32
	//   - rotXYZ: current rotation angles around each axis as [3]float32
	SetInstanceRotation(index uint32, rotSpeedXYZ, rotXYZ [3]float32)

	// SetInstanceData sets all transform data for a specific instance in a single call,
	// combining SetInstanceTransform and SetInstanceRotation to reduce mutex overhead.
	// On grass backends the rotation parameters are ignored.
	//
	// Parameters:
	//   - index: the instance index to update
	//   - posXYZ: the position as [3]float32 (x, y, z)
	//   - scaleXYZ: the scale as [3]float32 (x, y, z)
	//   - rotSpeedXYZ: rotation speed in radians per frame around each axis as [3]float32
	//   - rotXYZ: current rotation angles around each axis as [3]float32
	SetInstanceData(index uint32, posXYZ, scaleXYZ, rotSpeedXYZ, rotXYZ [3]float32)

	// SetDispatchExtent sets the compute dispatch size along each axis and resizes the
	// blade population to the extent's volume, re-arming the init pass.
	// No-op on simple backends.
	//
	// Parameters:
	//   - extent: the dispatch size along x, y, z; each component must be at least 1
	SetDispatchExtent(extent [3]uint32)

	// DispatchExtent returns the compute dispatch size along each axis.
	// Returns zeros on simple backends.
	//
	// Returns:
	//   - [3]uint32: the dispatch extent
	DispatchExtent() [3]uint32

	// NeedsInit reports whether the grass instance buffer must be seeded by the init
	// compute pass before the next update dispatch. Returns false on simple backends.
	//
	// Returns:
	//   - bool: true if the init pass should be dispatched
	NeedsInit() bool

	// ClearNeedsInit resets the init flag after the init pass has been dispatched.
	// No-op on simple backends.
	ClearNeedsInit()

	// SetFieldParams replaces the field-wide wind and tint parameters staged into the
	// GrassGlobals uniform on the next PrepareFrame. No-op on simple backends.
	//
	// Parameters:
	//   - params: the new field parameters
	SetFieldParams(params GrassFieldParams)

	// FieldParams returns the current field-wide wind and tint parameters.
	// Returns the zero value on simple backends.
	//
	// Returns:
	//   - GrassFieldParams: the current field parameters
	FieldParams() GrassFieldParams

	// SetBladeInstance sets the instance record for a single blade from the host and
	// disarms the init pass. No-op on simple backends.
	//
	// Parameters:
	//   - index: the blade index to update
	//   - origin: the blade's world-space anchor; the y channel is the reference height
	//   - scale: the uniform scale applied to the shared blade mesh
	SetBladeInstance(index uint32, origin [3]float32, scale float32)

	// BladeInstance returns the CPU-side instance record for a blade.
	// Returns the zero value on simple backends.
	//
	// Parameters:
	//   - index: the blade index to query
	//
	// Returns:
	//   - GPUGrassInstance: the blade's instance record
	BladeInstance(index uint32) GPUGrassInstance

	// SeedBlades replaces the full blade population from the host, disarming the init
	// pass. No-op on simple backends.
	//
	// Parameters:
	//   - blades: the instance records to seed, at most one per blade slot
	SeedBlades(blades []GPUGrassInstance)

	// SetInitPipelineKey stores the compute pipeline key for the grass init pass.
	// No-op on simple backends.
	//
	// Parameters:
	//   - key: the registered compute pipeline key
	SetInitPipelineKey(key string)

	// InitPipelineKey returns the compute pipeline key for the grass init pass.
	// Returns "" on simple backends.
	//
	// Returns:
	//   - string: the init pipeline key
	InitPipelineKey() string

	// FieldTime returns the accumulated grass field time in seconds.
	// Returns 0 on simple backends.
	//
	// Returns:
	//   - float32: the accumulated time
	FieldTime() float32

	// Model retrieves the Model associated with this animator, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// SetModel assigns a Model to this animator. The model provides the mesh and
	// materials drawn for each instance and carries the update compute pipeline key.
	//
	// Parameters:
	//   - m: the Model to associate with this animator
	SetModel(m model.Model)

	// SetFrustumPlanes updates the six frustum planes used for GPU frustum culling.
	// Calling this enables culling for the animator. Planes should be extracted from
	// the current view-projection matrix each frame. No-op on grass backends, which
	// always draw their full population.
	//
	// Parameters:
	//   - planes: the six frustum planes in GPU-aligned format
	SetFrustumPlanes(planes [6]GPUFrustumPlane)

	// SetBoundingRadius sets the object-space bounding sphere radius used for frustum culling.
	//
	// Parameters:
	//   - radius: the bounding sphere radius
	SetBoundingRadius(radius float32)

	// BoundingRadius returns the current bounding sphere radius used for frustum culling.
	//
	// Returns:
	//   - float32: the bounding sphere radius
	BoundingRadius() float32

	// IndirectBuffer returns the GPU buffer used for DrawIndexedIndirect arguments.
	// Returns nil when culling is not enabled or GPU resources are not initialized.
	//
	// Parameters:
	//   - binding: the bind group index for the indirect buffer
	//
	// Returns:
	//   - *wgpu.Buffer: the indirect draw arguments buffer, or nil
	IndirectBuffer(binding int) *wgpu.Buffer

	// CullingEnabled returns whether GPU frustum culling is active for this animator.
	//
	// Returns:
	//   - bool: true if frustum planes have been set and culling is active
	CullingEnabled() bool

	// ResetIndirectArgs stages a buffer write that zeros the indirect args instance count
	// before each compute dispatch, so the shader can atomically count visible instances.
	//
	// Parameters:
	//   - indexCount: the number of indices in the mesh's index buffer
	//  - binding: the bind group index for the indirect args buffer
	ResetIndirectArgs(indexCount uint32, binding int)

	// InstanceTransform returns the position and scale for a specific instance.
	// On grass backends the position is the blade origin and the scale is the uniform
	// blade scale splatted across all three axes.
	//
	// Parameters:
	//   - index: the instance index to query
	//
	// Returns:
	//   - pos: the position as [3]float32 (x, y, z)
	//   - scale: the scale as [3]float32 (x, y, z)
	InstanceTransform(index uint32) (pos, scale [3]float32)

	// InstanceRotation returns the rotation speed and current rotation for a specific instance.
	// Returns zeros on grass backends where yaw is hash-derived.
	//
	// Parameters:
	//   - index: the instance index to query
	//
	// Returns:
	//   - rotSpeed: the rotation speed as [3]float32
	//   - rot: the current rotation as [3]float32
	InstanceRotation(index uint32) (rotSpeed, rot [3]float32)
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator instance with the specified backend type.
// The backend is created based on the type and then configured using the provided options.
// Binding indices are configured via WithBinding options rather than fixed struct parameters,
// allowing any shader binding layout.
//
// Parameters:
//   - backendType: the type of animation backend to use (BackendTypeSimple or BackendTypeGrassField)
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: a new instance of Animator configured with the specified backend and options
func NewAnimator(backendType AnimatorBackendType, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		backendType: backendType,
	}
	switch backendType {
	case BackendTypeGrassField:
		a.backend = newGrassFieldBackend()
	case BackendTypeSimple:
		fallthrough
	default:
		a.backend = newSimpleAnimatorBackend()
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) MaxInstances() uint32 {
	return a.backend.MaxInstances()
}

func (a *animator) ComputeBindGroupProvider() bind_group_provider.BindGroupProvider {
	return a.backend.ComputeBindGroupProvider()
}

func (a *animator) OutputBindGroupProvider() bind_group_provider.BindGroupProvider {
	return a.backend.OutputBindGroupProvider()
}

func (a *animator) AddInstance() (uint32, error) {
	return a.backend.AddInstance()
}

func (a *animator) Grow(newMax uint32) {
	a.backend.Grow(newMax)
}

func (a *animator) RemoveInstance(index uint32) (uint32, bool) {
	return a.backend.RemoveInstance(index)
}

func (a *animator) NeedsRebuild() bool {
	return a.backend.NeedsRebuild()
}

func (a *animator) ClearNeedsRebuild() {
	a.backend.ClearNeedsRebuild()
}

func (a *animator) InstanceCount() uint32 {
	return a.backend.InstanceCount()
}

func (a *animator) StagedWriteData() []bind_group_provider.BufferWrite {
	return a.backend.StagedWriteData()
}

func (a *animator) SetInstanceTransform(index uint32, posXYZ, scaleXYZ [3]float32) {
	a.backend.SetInstanceTransform(index, posXYZ, scaleXYZ)
}

func (a *animator) SetInstanceRotation(index uint32, rotSpeedXYZ, rotXYZ [3]float32) {
	a.backend.SetInstanceRotation(index, rotSpeedXYZ, rotXYZ)
}

func (a *animator) SetInstanceData(index uint32, posXYZ, scaleXYZ, rotSpeedXYZ, rotXYZ [3]float32) {
	a.backend.SetInstanceData(index, posXYZ, scaleXYZ, rotSpeedXYZ, rotXYZ)
}

func (a *animator) Flush(instanceBinding int) uint32 {
	return a.backend.Flush(instanceBinding)
}

func (a *animator) PrepareFrame(deltaTime float32, binding int) {
	a.backend.PrepareFrame(deltaTime, binding)
}

func (a *animator) Release() {
	a.backend.Release()
}

func (a *animator) BackendType() AnimatorBackendType {
	return a.backendType
}

func (a *animator) SetDispatchExtent(extent [3]uint32) {
	a.backend.SetDispatchExtent(extent)
}

func (a *animator) DispatchExtent() [3]uint32 {
	return a.backend.DispatchExtent()
}

func (a *animator) NeedsInit() bool {
	return a.backend.NeedsInit()
}

func (a *animator) ClearNeedsInit() {
	a.backend.ClearNeedsInit()
}

func (a *animator) SetFieldParams(params GrassFieldParams) {
	a.backend.SetFieldParams(params)
}

func (a *animator) FieldParams() GrassFieldParams {
	return a.backend.FieldParams()
}

func (a *animator) SetBladeInstance(index uint32, origin [3]float32, scale float32) {
	a.backend.SetBladeInstance(index, origin, scale)
}

func (a *animator) BladeInstance(index uint32) GPUGrassInstance {
	return a.backend.BladeInstance(index)
}

func (a *animator) SeedBlades(blades []GPUGrassInstance) {
	a.backend.SeedBlades(blades)
}

func (a *animator) SetInitPipelineKey(key string) {
	a.backend.SetInitPipelineKey(key)
}

func (a *animator) InitPipelineKey() string {
	return a.backend.InitPipelineKey()
}

func (a *animator) FieldTime() float32 {
	return a.backend.FieldTime()
}

func (a *animator) Model() model.Model {
	return a.model
}

func (a *animator) SetModel(m model.Model) {
	a.model = m
}

func (a *animator) SetFrustumPlanes(planes [6]GPUFrustumPlane) {
	a.backend.SetFrustumPlanes(planes)
}

func (a *animator) SetBoundingRadius(radius float32) {
	a.backend.SetBoundingRadius(radius)
}

func (a *animator) BoundingRadius() float32 {
	return a.backend.BoundingRadius()
}

func (a *animator) IndirectBuffer(binding int) *wgpu.Buffer {
	return a.backend.IndirectBuffer(binding)
}

func (a *animator) CullingEnabled() bool {
	return a.backend.CullingEnabled()
}

func (a *animator) ResetIndirectArgs(indexCount uint32, binding int) {
	a.backend.ResetIndirectArgs(indexCount, binding)
}

func (a *animator) InstanceTransform(index uint32) (pos, scale [3]float32) {
	return a.backend.InstanceTransform(index)
}

func (a *animator) InstanceRotation(index uint32) (rotSpeed, rot [3]float32) {
	return a.backend.InstanceRotation(index)
}
