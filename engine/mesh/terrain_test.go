package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTerrainDimensions(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 8
	verts, indices := GenerateTerrain(params)

	side := params.Cells + 1
	require.Len(t, verts, side*side)
	require.Len(t, indices, params.Cells*params.Cells*6)

	for _, idx := range indices {
		assert.Less(t, int(idx), len(verts))
	}
}

func TestGenerateTerrainDeterministic(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 8
	params.Seed = 7

	a, _ := GenerateTerrain(params)
	b, _ := GenerateTerrain(params)
	assert.Equal(t, a, b, "same seed must produce identical terrain")

	params.Seed = 8
	c, _ := GenerateTerrain(params)
	assert.NotEqual(t, a, c, "different seeds must diverge")
}

func TestGenerateTerrainHeightsWithinAmplitude(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 16
	verts, _ := GenerateTerrain(params)

	// Octave amplitudes form a geometric series with ratio Persistence, so the
	// summed noise can never exceed Amplitude / (1 - Persistence).
	bound := params.Amplitude / (1 - params.Persistence)
	var minY, maxY float32 = math.MaxFloat32, -math.MaxFloat32
	for _, v := range verts {
		y := v.Position[1]
		assert.LessOrEqual(t, float64(math.Abs(float64(y))), float64(bound))
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	assert.Greater(t, maxY, minY, "terrain should not be flat")
}

func TestGenerateTerrainCenteredExtent(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 4
	params.Size = 40
	verts, _ := GenerateTerrain(params)

	half := params.Size / 2
	first := verts[0]
	last := verts[len(verts)-1]
	assert.Equal(t, -half, first.Position[0])
	assert.Equal(t, -half, first.Position[2])
	assert.Equal(t, half, last.Position[0])
	assert.Equal(t, half, last.Position[2])
}

func TestGenerateTerrainNormalsUnitAndUpward(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 16
	verts, _ := GenerateTerrain(params)

	for _, v := range verts {
		n := v.Normal
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		assert.InDelta(t, 1.0, length, 1e-5)
		assert.Greater(t, n[1], float32(0), "heightfield normals face up")
	}
}

func TestGenerateTerrainUVsSpanUnitSquare(t *testing.T) {
	params := DefaultTerrainParams()
	params.Cells = 4
	verts, _ := GenerateTerrain(params)

	for _, v := range verts {
		assert.GreaterOrEqual(t, v.TexCoord[0], float32(0))
		assert.LessOrEqual(t, v.TexCoord[0], float32(1))
		assert.GreaterOrEqual(t, v.TexCoord[1], float32(0))
		assert.LessOrEqual(t, v.TexCoord[1], float32(1))
	}
	assert.Equal(t, [2]float32{0, 0}, verts[0].TexCoord)
	assert.Equal(t, [2]float32{1, 1}, verts[len(verts)-1].TexCoord)
}
