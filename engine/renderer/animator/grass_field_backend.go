package animator

import (
	"sync"

	"github.com/Carmen-Shannon/meadow-go/common"
	"github.com/Carmen-Shannon/meadow-go/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// GrassFieldParams holds the field-wide wind and tint parameters staged into the
// GrassGlobals uniform each frame. Time is managed by the backend and is not part
// of the params.
type GrassFieldParams struct {
	// WindFrequency is the global sway frequency shared by every blade in the field.
	WindFrequency float32

	// FlutterFrequency is the base frequency of the per-blade flutter wave before
	// the blade's hash perturbs it.
	FlutterFrequency float32

	// SwayAmplitude is the horizontal displacement amplitude at full height weight.
	SwayAmplitude float32

	// BaseTint and TipTint are the RGBA tints at the blade base and tip.
	BaseTint, TipTint [4]float32

	// BaseShade darkens the base tint and TipShade brightens the tip tint before
	// the height-weighted interpolation between them.
	BaseShade, TipShade float32
}

// DefaultGrassFieldParams returns the stock meadow look: a mid-green tint shared
// by base and tip, darkened to half at the base and brightened by half at the tip.
//
// Returns:
//   - GrassFieldParams: the default field parameters
func DefaultGrassFieldParams() GrassFieldParams {
	green := [4]float32{0.24, 0.50, 0.16, 1.0}
	return GrassFieldParams{
		WindFrequency:    2.0,
		FlutterFrequency: 2.3,
		SwayAmplitude:    0.08,
		BaseTint:         green,
		TipTint:          green,
		BaseShade:        0.5,
		TipShade:         1.5,
	}
}

// grassFieldBackendImpl is a concrete implementation of the grass field backend.
type grassFieldBackendImpl struct {
	mu *sync.Mutex

	// computeProvider holds the GPU resources for the grass compute passes (the GrassGlobals
	// uniform and the read_write instance record buffer). outputProvider holds the resources
	// the grass vertex stage reads (the same instance buffer, shared by the scene, plus the
	// same uniform). Buffer sharing between the two is wired by the scene at creation time.
	computeProvider, outputProvider bind_group_provider.BindGroupProvider

	// stagedWriteData batches pending GPU buffer writes, drained by the renderer each frame.
	stagedWriteData []bind_group_provider.BufferWrite

	// dispatchExtent is the compute dispatch size along each axis. The blade population is
	// the product of the three components and does not change after the field is created.
	dispatchExtent [3]uint32

	// maxInstances is the blade population, kept equal to the dispatch extent volume.
	maxInstances uint32

	// instanceData is the CPU-side mirror of the blade instance records. It is only
	// populated when blades are seeded from the host; when the init compute pass seeds
	// the buffer the mirror stays zeroed and reads reflect that.
	instanceData []GPUGrassInstance

	// Sparse dirty tracking for host-seeded blades, same scheme as the simple backend:
	// dirtyIndices holds mutated record indices, dirtyBitset dedups them in O(1).
	dirtyIndices []uint32
	dirtyBitset  []uint64

	// perFrameSlice is a reusable single-element slice for staging the GrassGlobals
	// uniform each frame without heap allocations.
	perFrameSlice []GPUGrassGlobals

	// needsInit is true when the instance buffer must be seeded by the init compute pass
	// before the first update dispatch. Host seeding clears it, since the seeded records
	// would otherwise be overwritten.
	needsInit bool

	// needsRebuild mirrors the simple backend's rebuild flag. Grass capacity is fixed at
	// creation, so it only trips if the dispatch extent changes after GPU buffers exist.
	needsRebuild bool

	// initPipelineKey is the compute pipeline key for the one-shot init pass. The update
	// pass key lives on the model, same as every other animator.
	initPipelineKey string

	// fieldParams and time feed the GrassGlobals uniform. time accumulates deltaTime
	// across PrepareFrame calls and never resets.
	fieldParams GrassFieldParams
	time        float32

	// Reusable staging buffers, safe to reuse every frame because queue.WriteBuffer
	// copies data internally before returning.
	stagingInstance, stagingUniform []byte

	// boundingRadius is kept for parity with the model's bounding sphere, but the grass
	// field always draws its full population so no culling state is maintained.
	boundingRadius float32
}

// grassFieldBackend defines the interface for the grass field animation backend.
// It manages a fixed population of per-blade instance records sized by a compute
// dispatch extent, seeded either by a one-shot init compute pass or from the host,
// and stages the per-frame GrassGlobals uniform that drives wind sway and tinting.
type grassFieldBackend interface {
	// SetDispatchExtent sets the compute dispatch size along each axis and resizes the
	// blade population to the extent's volume. All existing blade data is discarded and
	// the init pass is re-armed. Must be called before the field's GPU buffers are
	// created; the scene sizes buffers from the resulting capacity.
	//
	// Parameters:
	//   - extent: the dispatch size along x, y, z; each component must be at least 1
	SetDispatchExtent(extent [3]uint32)

	// DispatchExtent returns the compute dispatch size along each axis.
	//
	// Returns:
	//   - [3]uint32: the dispatch extent
	DispatchExtent() [3]uint32

	// NeedsInit reports whether the instance buffer must be seeded by the init compute
	// pass before the next update dispatch.
	//
	// Returns:
	//   - bool: true if the init pass should be dispatched
	NeedsInit() bool

	// ClearNeedsInit resets the init flag after the init pass has been dispatched.
	ClearNeedsInit()

	// SetFieldParams replaces the field-wide wind and tint parameters staged into the
	// GrassGlobals uniform on the next PrepareFrame.
	//
	// Parameters:
	//   - params: the new field parameters
	SetFieldParams(params GrassFieldParams)

	// FieldParams returns the current field-wide wind and tint parameters.
	//
	// Returns:
	//   - GrassFieldParams: the current field parameters
	FieldParams() GrassFieldParams

	// SetBladeInstance sets the instance record for a single blade from the host and
	// marks it dirty for upload on the next Flush. Host seeding disarms the init pass
	// so the seeded records are not overwritten.
	//
	// Parameters:
	//   - index: the blade index to update
	//   - origin: the blade's world-space anchor; the y channel is the reference height
	//   - scale: the uniform scale applied to the shared blade mesh
	SetBladeInstance(index uint32, origin [3]float32, scale float32)

	// BladeInstance returns the CPU-side instance record for a blade. Only meaningful
	// for host-seeded fields; records seeded by the init compute pass live on the GPU
	// and read back as zero here.
	//
	// Parameters:
	//   - index: the blade index to query
	//
	// Returns:
	//   - GPUGrassInstance: the blade's instance record
	BladeInstance(index uint32) GPUGrassInstance

	// SeedBlades replaces the full blade population from the host, marking every record
	// dirty and disarming the init pass. Records beyond the capacity are ignored.
	//
	// Parameters:
	//   - blades: the instance records to seed, at most one per blade slot
	SeedBlades(blades []GPUGrassInstance)

	// SetInitPipelineKey stores the compute pipeline key for the one-shot init pass.
	//
	// Parameters:
	//   - key: the registered compute pipeline key
	SetInitPipelineKey(key string)

	// InitPipelineKey returns the compute pipeline key for the one-shot init pass.
	//
	// Returns:
	//   - string: the init pipeline key, or "" if not set
	InitPipelineKey() string

	// FieldTime returns the accumulated field time in seconds, as staged into the
	// GrassGlobals uniform on the most recent PrepareFrame.
	//
	// Returns:
	//   - float32: the accumulated time
	FieldTime() float32
}

// compile-time check to ensure grassFieldBackendImpl implements AnimatorBackend interface.
var _ AnimatorBackend = &grassFieldBackendImpl{}

// newGrassFieldBackend creates and initializes a new instance of the grass field backend
// with a 1x1x1 dispatch extent. Callers size the field via SetDispatchExtent before the
// scene creates GPU buffers.
//
// Returns:
//   - AnimatorBackend: a new instance of the grass field backend
func newGrassFieldBackend() AnimatorBackend {
	g := &grassFieldBackendImpl{
		mu:             &sync.Mutex{},
		dispatchExtent: [3]uint32{1, 1, 1},
		maxInstances:   1,
		fieldParams:    DefaultGrassFieldParams(),
		needsInit:      true,
	}

	g.instanceData = make([]GPUGrassInstance, g.maxInstances)
	g.perFrameSlice = make([]GPUGrassGlobals, 1)
	g.computeProvider = bind_group_provider.NewBindGroupProvider("grass_compute")
	g.outputProvider = bind_group_provider.NewBindGroupProvider("grass_output")
	g.stagedWriteData = make([]bind_group_provider.BufferWrite, 0, 2)
	g.dirtyIndices = make([]uint32, 0, g.maxInstances)
	g.dirtyBitset = make([]uint64, (g.maxInstances+63)/64)
	g.initStagingPool()
	return g
}

// initStagingPool allocates (or reallocates) the reusable staging byte slices sized to
// the current capacity. Called at init time and after SetDispatchExtent.
func (g *grassFieldBackendImpl) initStagingPool() {
	g.stagingInstance = make([]byte, int(g.maxInstances)*(&GPUGrassInstance{}).Size())
	g.stagingUniform = make([]byte, (&GPUGrassGlobals{}).Size())
}

func (g *grassFieldBackendImpl) SetDispatchExtent(extent [3]uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range extent {
		if extent[i] == 0 {
			extent[i] = 1
		}
	}

	g.dispatchExtent = extent
	g.maxInstances = extent[0] * extent[1] * extent[2]
	g.instanceData = make([]GPUGrassInstance, g.maxInstances)
	g.dirtyIndices = g.dirtyIndices[:0]
	g.dirtyBitset = make([]uint64, (g.maxInstances+63)/64)
	g.stagedWriteData = g.stagedWriteData[:0]
	g.needsInit = true
	g.initStagingPool()
}

func (g *grassFieldBackendImpl) DispatchExtent() [3]uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dispatchExtent
}

func (g *grassFieldBackendImpl) NeedsInit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.needsInit
}

func (g *grassFieldBackendImpl) ClearNeedsInit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.needsInit = false
}

func (g *grassFieldBackendImpl) SetFieldParams(params GrassFieldParams) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fieldParams = params
}

func (g *grassFieldBackendImpl) FieldParams() GrassFieldParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fieldParams
}

func (g *grassFieldBackendImpl) SetBladeInstance(index uint32, origin [3]float32, scale float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index >= g.maxInstances {
		return
	}

	g.instanceData[index] = GPUGrassInstance{Origin: origin, Scale: scale}
	g.enqueueDirty(index)
	g.needsInit = false
}

func (g *grassFieldBackendImpl) BladeInstance(index uint32) GPUGrassInstance {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index >= g.maxInstances {
		return GPUGrassInstance{}
	}
	return g.instanceData[index]
}

func (g *grassFieldBackendImpl) SeedBlades(blades []GPUGrassInstance) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := uint32(len(blades))
	if n > g.maxInstances {
		n = g.maxInstances
	}

	copy(g.instanceData[:n], blades[:n])
	for i := uint32(0); i < n; i++ {
		g.enqueueDirty(i)
	}
	g.needsInit = false
}

func (g *grassFieldBackendImpl) SetInitPipelineKey(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initPipelineKey = key
}

func (g *grassFieldBackendImpl) InitPipelineKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initPipelineKey
}

func (g *grassFieldBackendImpl) FieldTime() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.time
}

func (g *grassFieldBackendImpl) ComputeBindGroupProvider() bind_group_provider.BindGroupProvider {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.computeProvider
}

func (g *grassFieldBackendImpl) OutputBindGroupProvider() bind_group_provider.BindGroupProvider {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outputProvider
}

func (g *grassFieldBackendImpl) SetComputeBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.computeProvider = provider
}

func (g *grassFieldBackendImpl) SetOutputBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outputProvider = provider
}

// AddInstance is a no-op for grass fields: the blade population is fixed at the
// dispatch extent's volume, so per-object instance registration does not apply.
func (g *grassFieldBackendImpl) AddInstance() (uint32, error) {
	return 0, nil
}

func (g *grassFieldBackendImpl) InstanceCount() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxInstances
}

func (g *grassFieldBackendImpl) MaxInstances() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxInstances
}

func (g *grassFieldBackendImpl) StagedWriteData() []bind_group_provider.BufferWrite {
	g.mu.Lock()
	defer g.mu.Unlock()
	w := g.stagedWriteData
	g.stagedWriteData = g.stagedWriteData[:0]
	return w
}

func (g *grassFieldBackendImpl) SetInstanceTransform(index uint32, posXYZ, scaleXYZ [3]float32) {
	// Uniform blade scale comes from the x component; blades have no per-axis scale.
	g.SetBladeInstance(index, posXYZ, scaleXYZ[0])
}

func (g *grassFieldBackendImpl) SetInstanceData(index uint32, posXYZ, scaleXYZ, rotSpeedXYZ, rotXYZ [3]float32) {
	// Rotation is hash-derived in the vertex stage, so only the transform applies.
	g.SetBladeInstance(index, posXYZ, scaleXYZ[0])
}

func (g *grassFieldBackendImpl) InstanceTransform(index uint32) (pos, scale [3]float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index >= g.maxInstances {
		return
	}
	inst := g.instanceData[index]
	return inst.Origin, [3]float32{inst.Scale, inst.Scale, inst.Scale}
}

func (g *grassFieldBackendImpl) Flush(instanceBinding int) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.dirtyIndices) == 0 || g.needsRebuild {
		return 0
	}

	// Same coalescing scheme as the simple backend: sort dirty indices, then merge
	// contiguous runs into single buffer writes.
	sortUint32(g.dirtyIndices)

	instSize := uint64((&GPUGrassInstance{}).Size())
	count := uint32(len(g.dirtyIndices))

	runStart := g.dirtyIndices[0]
	runEnd := runStart + 1 // exclusive

	for i := 1; i < len(g.dirtyIndices); i++ {
		idx := g.dirtyIndices[i]
		if idx == runEnd {
			runEnd++
		} else {
			g.flushRange(runStart, runEnd, instSize, instanceBinding)
			runStart = idx
			runEnd = idx + 1
		}
	}
	g.flushRange(runStart, runEnd, instSize, instanceBinding)

	g.dirtyIndices = g.dirtyIndices[:0]
	for i := range g.dirtyBitset {
		g.dirtyBitset[i] = 0
	}

	return count
}

func (g *grassFieldBackendImpl) PrepareFrame(deltaTime float32, binding int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.needsRebuild {
		return
	}

	g.time += deltaTime
	p := g.fieldParams
	g.perFrameSlice[0] = GPUGrassGlobals{
		Time:             g.time,
		WindFrequency:    p.WindFrequency,
		FlutterFrequency: p.FlutterFrequency,
		SwayAmplitude:    p.SwayAmplitude,
		BaseTint:         p.BaseTint,
		TipTint:          p.TipTint,
		BaseShade:        p.BaseShade,
		TipShade:         p.TipShade,
	}

	raw := common.SliceToBytes(g.perFrameSlice)
	buf := g.stagingUniform[:len(raw)]
	copy(buf, raw)

	g.stagedWriteData = append(g.stagedWriteData, bind_group_provider.BufferWrite{
		Provider: g.computeProvider,
		Binding:  binding,
		Offset:   0,
		Data:     buf,
	})
}

// enqueueDirty adds a blade index to the dirty queue if not already present.
// Uses a bitset for O(1) dedup. Caller must hold g.mu.
func (g *grassFieldBackendImpl) enqueueDirty(index uint32) {
	word := index / 64
	bit := uint64(1) << (index % 64)
	if g.dirtyBitset[word]&bit != 0 {
		return // already queued
	}
	g.dirtyBitset[word] |= bit
	g.dirtyIndices = append(g.dirtyIndices, index)
}

// flushRange stages a contiguous run of dirty blade records [start, end) as a single
// GPU buffer write. Caller must hold g.mu.
func (g *grassFieldBackendImpl) flushRange(start, end uint32, instSize uint64, binding int) {
	offset := uint64(start) * instSize
	dirty := g.instanceData[start:end]
	raw := common.SliceToBytes(dirty)
	buf := g.stagingInstance[offset : offset+uint64(len(raw))]
	copy(buf, raw)

	g.stagedWriteData = append(g.stagedWriteData, bind_group_provider.BufferWrite{
		Provider: g.computeProvider,
		Binding:  binding,
		Offset:   offset,
		Data:     buf,
	})
}

func (g *grassFieldBackendImpl) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.computeProvider != nil {
		g.computeProvider.Release()
	}
	if g.outputProvider != nil {
		g.outputProvider.Release()
	}
	g.instanceData = nil
	g.perFrameSlice = nil
	g.stagedWriteData = nil
	g.stagingInstance = nil
	g.stagingUniform = nil
	g.dirtyIndices = nil
	g.dirtyBitset = nil
}

func (g *grassFieldBackendImpl) SetBoundingRadius(radius float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.boundingRadius = radius
}

func (g *grassFieldBackendImpl) BoundingRadius() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.boundingRadius
}

// --- No-op stubs for simpleAnimatorBackend interface compliance ---

// The grass field always draws its full population, so frustum culling and the
// indirect draw path do not apply.
func (g *grassFieldBackendImpl) SetFrustumPlanes(planes [6]GPUFrustumPlane)            {}
func (g *grassFieldBackendImpl) IndirectBuffer(binding int) *wgpu.Buffer               { return nil }
func (g *grassFieldBackendImpl) CullingEnabled() bool                                  { return false }
func (g *grassFieldBackendImpl) ResetIndirectArgs(indexCount uint32, binding int)      {}
func (g *grassFieldBackendImpl) SetInstanceRotation(index uint32, rotSpeedXYZ, rotXYZ [3]float32) {
}
func (g *grassFieldBackendImpl) InstanceRotation(index uint32) (rotSpeed, rot [3]float32) { return }

// Capacity is derived from the dispatch extent, so the generic sizing methods no-op.
func (g *grassFieldBackendImpl) SetMaxInstances(maxInstances uint32)       {}
func (g *grassFieldBackendImpl) Grow(newMax uint32)                        {}
func (g *grassFieldBackendImpl) RemoveInstance(index uint32) (uint32, bool) { return 0, false }

func (g *grassFieldBackendImpl) NeedsRebuild() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.needsRebuild
}

func (g *grassFieldBackendImpl) ClearNeedsRebuild() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.needsRebuild = false
}
