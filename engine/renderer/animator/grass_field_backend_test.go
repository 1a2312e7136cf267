package animator

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrassBackend(extent [3]uint32) grassFieldBackend {
	b := newGrassFieldBackend()
	b.SetDispatchExtent(extent)
	return b
}

func TestGrassBackendCapacityTracksExtent(t *testing.T) {
	b := newTestGrassBackend([3]uint32{8, 2, 4})
	impl := b.(*grassFieldBackendImpl)
	assert.Equal(t, [3]uint32{8, 2, 4}, b.DispatchExtent())
	assert.Equal(t, uint32(64), impl.MaxInstances())
	assert.Equal(t, uint32(64), impl.InstanceCount())
}

func TestGrassBackendZeroExtentComponentsClampToOne(t *testing.T) {
	b := newTestGrassBackend([3]uint32{0, 0, 0})
	assert.Equal(t, [3]uint32{1, 1, 1}, b.DispatchExtent())
}

func TestGrassBackendInitArmedUntilHostSeeds(t *testing.T) {
	b := newTestGrassBackend([3]uint32{4, 1, 4})
	assert.True(t, b.NeedsInit(), "fresh field must run the init pass")

	b.SetBladeInstance(3, [3]float32{1, 2, 3}, 0.9)
	assert.False(t, b.NeedsInit(), "host seeding must disarm the init pass")

	rec := b.BladeInstance(3)
	assert.Equal(t, [3]float32{1, 2, 3}, rec.Origin)
	assert.Equal(t, float32(0.9), rec.Scale)
}

func TestGrassBackendSeedBladesDisarmsInit(t *testing.T) {
	b := newTestGrassBackend([3]uint32{2, 1, 2})
	blades := []GPUGrassInstance{
		{Origin: [3]float32{0, 0, 0}, Scale: 1},
		{Origin: [3]float32{1, 0.5, 0}, Scale: 0.8},
		{Origin: [3]float32{0, 0.2, 1}, Scale: 1.2},
		{Origin: [3]float32{1, 0.1, 1}, Scale: 1.1},
	}
	b.SeedBlades(blades)

	assert.False(t, b.NeedsInit())
	for i, want := range blades {
		assert.Equal(t, want, b.BladeInstance(uint32(i)))
	}
}

func TestGrassBackendSeedBladesIgnoresOverflow(t *testing.T) {
	b := newTestGrassBackend([3]uint32{2, 1, 1})
	blades := make([]GPUGrassInstance, 5)
	for i := range blades {
		blades[i] = GPUGrassInstance{Origin: [3]float32{float32(i), 0, 0}, Scale: 1}
	}
	b.SeedBlades(blades)
	assert.Equal(t, float32(1), b.BladeInstance(1).Origin[0])
	assert.Equal(t, GPUGrassInstance{}, b.BladeInstance(4), "out-of-range reads are zero")
}

func TestGrassBackendSetDispatchExtentRearmsInit(t *testing.T) {
	b := newTestGrassBackend([3]uint32{2, 1, 2})
	b.SeedBlades(make([]GPUGrassInstance, 4))
	require.False(t, b.NeedsInit())

	b.SetDispatchExtent([3]uint32{4, 1, 4})
	assert.True(t, b.NeedsInit(), "resizing discards seeds and re-arms init")
	assert.Equal(t, [3]uint32{4, 1, 4}, b.DispatchExtent())
}

func TestGrassBackendClearNeedsInit(t *testing.T) {
	b := newTestGrassBackend([3]uint32{1, 1, 1})
	require.True(t, b.NeedsInit())
	b.ClearNeedsInit()
	assert.False(t, b.NeedsInit())
}

func TestGrassBackendFlushCoalescesContiguousRuns(t *testing.T) {
	b := newTestGrassBackend([3]uint32{16, 1, 1})
	impl := b.(*grassFieldBackendImpl)

	// Two contiguous runs: [2,4] and [9,10].
	for _, idx := range []uint32{4, 2, 3, 10, 9} {
		b.SetBladeInstance(idx, [3]float32{float32(idx), 0, 0}, 1)
	}

	count := impl.Flush(1)
	assert.Equal(t, uint32(5), count)

	writes := impl.StagedWriteData()
	require.Len(t, writes, 2)

	instSize := uint64((&GPUGrassInstance{}).Size())
	assert.Equal(t, 2*instSize, writes[0].Offset)
	assert.Equal(t, 3*int(instSize), len(writes[0].Data))
	assert.Equal(t, 9*instSize, writes[1].Offset)
	assert.Equal(t, 2*int(instSize), len(writes[1].Data))
	assert.Equal(t, 1, writes[0].Binding)

	// The first record in the first run is blade 2.
	x := math.Float32frombits(binary.LittleEndian.Uint32(writes[0].Data[0:4]))
	assert.Equal(t, float32(2), x)
}

func TestGrassBackendFlushIsIdempotent(t *testing.T) {
	b := newTestGrassBackend([3]uint32{4, 1, 1})
	impl := b.(*grassFieldBackendImpl)

	b.SetBladeInstance(0, [3]float32{1, 0, 0}, 1)
	assert.Equal(t, uint32(1), impl.Flush(1))
	impl.StagedWriteData()
	assert.Equal(t, uint32(0), impl.Flush(1), "second flush has nothing to stage")
	assert.Empty(t, impl.StagedWriteData())
}

func TestGrassBackendDuplicateDirtyIndicesDedup(t *testing.T) {
	b := newTestGrassBackend([3]uint32{4, 1, 1})
	impl := b.(*grassFieldBackendImpl)

	b.SetBladeInstance(1, [3]float32{1, 0, 0}, 1)
	b.SetBladeInstance(1, [3]float32{2, 0, 0}, 1)
	assert.Equal(t, uint32(1), impl.Flush(0), "same blade counts once")

	writes := impl.StagedWriteData()
	require.Len(t, writes, 1)
	x := math.Float32frombits(binary.LittleEndian.Uint32(writes[0].Data[0:4]))
	assert.Equal(t, float32(2), x, "latest write wins")
}

func TestGrassBackendPrepareFrameAccumulatesTime(t *testing.T) {
	b := newTestGrassBackend([3]uint32{1, 1, 1})
	impl := b.(*grassFieldBackendImpl)

	impl.PrepareFrame(0.5, 0)
	impl.PrepareFrame(0.25, 0)
	assert.InDelta(t, 0.75, b.FieldTime(), 1e-6)
}

func TestGrassBackendPrepareFrameStagesGlobals(t *testing.T) {
	b := newTestGrassBackend([3]uint32{1, 1, 1})
	impl := b.(*grassFieldBackendImpl)

	params := DefaultGrassFieldParams()
	params.SwayAmplitude = 0.25
	b.SetFieldParams(params)

	impl.PrepareFrame(1.0, 3)
	writes := impl.StagedWriteData()
	require.Len(t, writes, 1)
	assert.Equal(t, 3, writes[0].Binding)
	assert.Equal(t, uint64(0), writes[0].Offset)
	require.Equal(t, (&GPUGrassGlobals{}).Size(), len(writes[0].Data))

	time := math.Float32frombits(binary.LittleEndian.Uint32(writes[0].Data[0:4]))
	assert.InDelta(t, 1.0, time, 1e-6)
	amplitude := math.Float32frombits(binary.LittleEndian.Uint32(writes[0].Data[12:16]))
	assert.InDelta(t, 0.25, amplitude, 1e-6)
}

func TestGrassBackendFieldParamsRoundTrip(t *testing.T) {
	b := newTestGrassBackend([3]uint32{1, 1, 1})
	params := GrassFieldParams{
		WindFrequency:    3.1,
		FlutterFrequency: 4.2,
		SwayAmplitude:    0.5,
		BaseTint:         [4]float32{0.1, 0.2, 0.3, 1},
		TipTint:          [4]float32{0.4, 0.5, 0.6, 1},
		BaseShade:        0.7,
		TipShade:         1.3,
	}
	b.SetFieldParams(params)
	assert.Equal(t, params, b.FieldParams())
}

func TestGrassBackendDefaultParams(t *testing.T) {
	p := DefaultGrassFieldParams()
	assert.Equal(t, p.BaseTint, p.TipTint, "stock look shares one green across the blade")
	assert.Less(t, p.BaseShade, float32(1), "base darkens")
	assert.Greater(t, p.TipShade, float32(1), "tip brightens")
}

func TestGrassInstanceMarshalLayout(t *testing.T) {
	inst := GPUGrassInstance{Origin: [3]float32{1.5, -2.0, 3.25}, Scale: 0.75}
	require.Equal(t, 16, inst.Size())

	buf := inst.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(-2.0), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, float32(3.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])))
}

func TestGrassGlobalsMarshalLayout(t *testing.T) {
	g := GPUGrassGlobals{
		Time:             1.0,
		WindFrequency:    2.0,
		FlutterFrequency: 2.3,
		SwayAmplitude:    0.08,
		BaseTint:         [4]float32{0.24, 0.50, 0.16, 1.0},
		TipTint:          [4]float32{0.24, 0.50, 0.16, 1.0},
		BaseShade:        0.5,
		TipShade:         1.5,
	}
	require.Equal(t, 64, g.Size())

	buf := g.Marshal()
	require.Len(t, buf, 64)
	assert.Equal(t, float32(2.3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(0.24), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[52:56])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[60:64]), "padding stays zero")
}
