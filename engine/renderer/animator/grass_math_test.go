package animator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrassHashDeterministicAndInRange(t *testing.T) {
	inputs := []float32{0, 0.5, 1, 3.25, 17.017, 100.9, 12345.678, -0.5, -42.42, -9999.25}
	for _, x := range inputs {
		h := GrassHash(x)
		assert.GreaterOrEqual(t, h, float32(0), "hash of %v below range", x)
		assert.Less(t, h, float32(1), "hash of %v above range", x)
		assert.Equal(t, h, GrassHash(x), "hash of %v not deterministic", x)
	}
}

func TestGrassHashSpreadsNearbyInputs(t *testing.T) {
	// Blades a few centimeters apart should land on visibly different hashes;
	// that is the whole point of the large multiplier.
	a := GrassHash(10.00)
	b := GrassHash(10.05)
	c := GrassHash(10.10)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
}

func TestGrassInstanceIndexBijection(t *testing.T) {
	const dimX, dimY, dimZ = 4, 1, 4
	seen := make(map[uint32]bool)
	for z := uint32(0); z < dimZ; z++ {
		for y := uint32(0); y < dimY; y++ {
			for x := uint32(0); x < dimX; x++ {
				i := GrassInstanceIndex(x, y, z, dimX, dimY)
				assert.Less(t, i, uint32(dimX*dimY*dimZ))
				assert.False(t, seen[i], "index %d produced twice", i)
				seen[i] = true
			}
		}
	}
	require.Len(t, seen, dimX*dimY*dimZ)
}

func TestGrassInstanceIndexOrdering(t *testing.T) {
	// x is the fastest-varying axis, then y, then z.
	assert.Equal(t, uint32(0), GrassInstanceIndex(0, 0, 0, 8, 4))
	assert.Equal(t, uint32(1), GrassInstanceIndex(1, 0, 0, 8, 4))
	assert.Equal(t, uint32(8), GrassInstanceIndex(0, 1, 0, 8, 4))
	assert.Equal(t, uint32(32), GrassInstanceIndex(0, 0, 1, 8, 4))
	assert.Equal(t, uint32(32+8+1), GrassInstanceIndex(1, 1, 1, 8, 4))
}

func TestGrassInitRecord(t *testing.T) {
	rec := GrassInitRecord(3, 0, 2)
	assert.Equal(t, [3]float32{3, 0, 2}, rec.Origin)
	assert.Equal(t, float32(1), rec.Scale)
	assert.Equal(t, float32(0), rec.ReferenceHeight())
}

func TestGrassInitPassPlacement(t *testing.T) {
	// A 4x1x4 dispatch seeds 16 records, each placed at its own invocation
	// coordinate, with no index collisions across the volume.
	const dimX, dimY, dimZ = 4, 1, 4
	records := make(map[uint32]GPUGrassInstance)
	for z := uint32(0); z < dimZ; z++ {
		for y := uint32(0); y < dimY; y++ {
			for x := uint32(0); x < dimX; x++ {
				i := GrassInstanceIndex(x, y, z, dimX, dimY)
				_, taken := records[i]
				require.False(t, taken, "index %d written twice", i)
				records[i] = GrassInitRecord(x, y, z)

				assert.Equal(t, [3]float32{float32(x), float32(y), float32(z)}, records[i].Origin)
				assert.Equal(t, float32(1), records[i].Scale)
			}
		}
	}
	require.Len(t, records, dimX*dimY*dimZ)
}

func TestGrassHeightWeightClamps(t *testing.T) {
	assert.Equal(t, float32(0), GrassHeightWeight(1.0, 2.0), "below reference")
	assert.Equal(t, float32(0), GrassHeightWeight(2.0, 2.0), "at reference")
	assert.InDelta(t, 0.5, GrassHeightWeight(2.5, 2.0), 1e-6)
	assert.Equal(t, float32(1), GrassHeightWeight(3.0, 2.0), "one unit up")
	assert.Equal(t, float32(1), GrassHeightWeight(10.0, 2.0), "far above reference")
}

func TestGrassYawAngleRange(t *testing.T) {
	for _, h := range []float32{0, 0.25, 0.5, 0.9999} {
		yaw := GrassYawAngle(h)
		assert.GreaterOrEqual(t, yaw, float32(0))
		assert.Less(t, yaw, float32(2*math.Pi))
		assert.InDelta(t, h*2*math.Pi, yaw, 1e-5)
	}
}

func TestGrassRotateY(t *testing.T) {
	// Quarter turn sends +X to -Z and leaves Y untouched.
	out := GrassRotateY([3]float32{1, 2, 0}, float32(math.Pi/2))
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 2, out[1], 1e-6)
	assert.InDelta(t, -1, out[2], 1e-6)

	// Full turn is the identity.
	v := [3]float32{0.3, -1.2, 0.7}
	out = GrassRotateY(v, float32(2*math.Pi))
	assert.InDelta(t, v[0], out[0], 1e-5)
	assert.InDelta(t, v[1], out[1], 1e-5)
	assert.InDelta(t, v[2], out[2], 1e-5)
}

func TestGrassRotateYPreservesLength(t *testing.T) {
	v := [3]float32{0.5, 0, 0.5}
	out := GrassRotateY(v, 1.234)
	lenIn := math.Hypot(float64(v[0]), float64(v[2]))
	lenOut := math.Hypot(float64(out[0]), float64(out[2]))
	assert.InDelta(t, lenIn, lenOut, 1e-6)
}

func TestGrassSwayOffsetZeroAtRoot(t *testing.T) {
	for _, time := range []float32{0, 1.5, 100} {
		offset := GrassSwayOffset(time, 2.0, 2.3, 0.08, 0.42, 0, 3.0, -4.0)
		assert.Equal(t, float32(0), offset, "root must not sway at t=%v", time)
	}
}

func TestGrassSwayOffsetBounded(t *testing.T) {
	const amplitude = 0.08
	for _, time := range []float32{0, 0.1, 0.7, 3.3, 42.0} {
		offset := GrassSwayOffset(time, 2.0, 2.3, amplitude, 0.77, 1.0, 1.0, 2.0)
		assert.LessOrEqual(t, float64(math.Abs(float64(offset))), float64(2*amplitude)+1e-6)
	}
}

func TestGrassSwayOffsetScalesWithHeightWeight(t *testing.T) {
	full := GrassSwayOffset(1.3, 2.0, 2.3, 0.08, 0.5, 1.0, 2.0, 3.0)
	half := GrassSwayOffset(1.3, 2.0, 2.3, 0.08, 0.5, 0.5, 2.0, 3.0)
	assert.InDelta(t, full/2, half, 1e-6)
}

func TestGrassBladeColorEndpoints(t *testing.T) {
	base := [4]float32{0.24, 0.50, 0.16, 1.0}
	tip := [4]float32{0.24, 0.50, 0.16, 1.0}

	root := GrassBladeColor(base, tip, 0.5, 1.5, 0)
	assert.InDelta(t, base[0]*0.5, root[0], 1e-6)
	assert.InDelta(t, base[1]*0.5, root[1], 1e-6)
	assert.InDelta(t, base[2]*0.5, root[2], 1e-6)
	assert.InDelta(t, base[3], root[3], 1e-6, "alpha is not shaded")

	top := GrassBladeColor(base, tip, 0.5, 1.5, 1)
	assert.InDelta(t, tip[0]*1.5, top[0], 1e-6)
	assert.InDelta(t, tip[1]*1.5, top[1], 1e-6)
	assert.InDelta(t, tip[2]*1.5, top[2], 1e-6)
	assert.InDelta(t, tip[3], top[3], 1e-6)
}

func TestGrassPipelineDeterministicAtFixedTime(t *testing.T) {
	// Holding time constant, the full vertex-stage derivation (hash, yaw,
	// rotation, sway, color) must produce bit-identical results across runs.
	origin := [3]float32{12.5, 0.75, -3.25}
	vertex := [3]float32{0.04, 0.8, 0}
	params := DefaultGrassFieldParams()
	const time = 4.2

	derive := func() ([3]float32, float32, [4]float32) {
		hash := GrassHash(origin[0] + origin[2])
		rotated := GrassRotateY(vertex, GrassYawAngle(hash))
		w := GrassHeightWeight(origin[1]+rotated[1], origin[1])
		sway := GrassSwayOffset(time, params.WindFrequency, params.FlutterFrequency,
			params.SwayAmplitude, hash, w, origin[0], origin[2])
		color := GrassBladeColor(params.BaseTint, params.TipTint, params.BaseShade, params.TipShade, w)
		return rotated, sway, color
	}

	rotatedA, swayA, colorA := derive()
	rotatedB, swayB, colorB := derive()
	assert.Equal(t, rotatedA, rotatedB)
	assert.Equal(t, swayA, swayB)
	assert.Equal(t, colorA, colorB)
}

func TestGrassBladeColorMidpoint(t *testing.T) {
	base := [4]float32{1, 0, 0, 1}
	tip := [4]float32{0, 1, 0, 0.5}
	mid := GrassBladeColor(base, tip, 1.0, 1.0, 0.5)
	assert.InDelta(t, 0.5, mid[0], 1e-6)
	assert.InDelta(t, 0.5, mid[1], 1e-6)
	assert.InDelta(t, 0, mid[2], 1e-6)
	assert.InDelta(t, 0.75, mid[3], 1e-6)
}
