package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/meadow-go/engine/model"
)

func quadMesh(size float32) ([]model.GPUVertex, []uint32) {
	up := [3]float32{0, 1, 0}
	verts := []model.GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: up},
		{Position: [3]float32{size, 0, 0}, Normal: up},
		{Position: [3]float32{0, 0, size}, Normal: up},
		{Position: [3]float32{size, 0, size}, Normal: up},
	}
	return verts, []uint32{0, 2, 1, 1, 2, 3}
}

func TestSurfaceSamplerSamplesInsideMesh(t *testing.T) {
	verts, indices := quadMesh(10)
	s := NewSurfaceSampler(verts, indices, WithSamplerSeed(1))
	require.Equal(t, 2, s.TriangleCount())
	assert.InDelta(t, 100.0, float64(s.TotalArea()), 1e-3)

	for i := 0; i < 200; i++ {
		pos, normal, ok := s.Sample()
		require.True(t, ok)
		assert.GreaterOrEqual(t, pos.X(), float32(0))
		assert.LessOrEqual(t, pos.X(), float32(10))
		assert.GreaterOrEqual(t, pos.Z(), float32(0))
		assert.LessOrEqual(t, pos.Z(), float32(10))
		assert.Equal(t, float32(0), pos.Y())
		assert.InDelta(t, 0, normal.X(), 1e-6)
		assert.InDelta(t, 1, normal.Y(), 1e-6)
		assert.InDelta(t, 0, normal.Z(), 1e-6)
	}
}

func TestSurfaceSamplerRejectsSteepTriangles(t *testing.T) {
	// One flat triangle and one vertical wall.
	verts := []model.GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{6, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{5, 1, 0}, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint32{0, 2, 1, 3, 4, 5}

	s := NewSurfaceSampler(verts, indices)
	require.Equal(t, 1, s.TriangleCount(), "the wall must be filtered out")

	for i := 0; i < 50; i++ {
		pos, _, ok := s.Sample()
		require.True(t, ok)
		assert.Less(t, pos.X(), float32(2), "samples never land on the wall")
	}
}

func TestSurfaceSamplerSlopeThresholdOption(t *testing.T) {
	// 45 degree slope: face normal dot up = cos(45°) ≈ 0.707, below the 0.75
	// default but above a relaxed threshold.
	verts := []model.GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 1, 1}, Normal: [3]float32{0, 1, 0}},
	}
	indices := []uint32{0, 2, 1}

	strict := NewSurfaceSampler(verts, indices)
	assert.Equal(t, 0, strict.TriangleCount())
	_, _, ok := strict.Sample()
	assert.False(t, ok)

	relaxed := NewSurfaceSampler(verts, indices, WithSlopeThreshold(0.5))
	assert.Equal(t, 1, relaxed.TriangleCount())
	_, _, ok = relaxed.Sample()
	assert.True(t, ok)
}

func TestSurfaceSamplerDeterministicWithSeed(t *testing.T) {
	verts, indices := quadMesh(10)

	a := NewSurfaceSampler(verts, indices, WithSamplerSeed(99))
	b := NewSurfaceSampler(verts, indices, WithSamplerSeed(99))
	for i := 0; i < 20; i++ {
		posA, _, _ := a.Sample()
		posB, _, _ := b.Sample()
		assert.Equal(t, posA, posB)
	}
}

func TestSurfaceSamplerAreaWeighting(t *testing.T) {
	// A tiny triangle next to one 100x larger: nearly all samples should land
	// on the big one.
	verts := []model.GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{10, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{20, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{10, 0, 10}, Normal: [3]float32{0, 1, 0}},
	}
	indices := []uint32{0, 2, 1, 3, 5, 4}

	s := NewSurfaceSampler(verts, indices, WithSamplerSeed(3))
	require.Equal(t, 2, s.TriangleCount())

	const n = 1000
	var small int
	for i := 0; i < n; i++ {
		pos, _, _ := s.Sample()
		if pos.X() < 5 {
			small++
		}
	}
	// Expected share is 0.5/50.5 ≈ 1%; allow generous slack.
	assert.Less(t, small, n/10)
	assert.Greater(t, n-small, n*8/10)
}

func TestSurfaceSamplerInterpolatesNormals(t *testing.T) {
	verts := []model.GPUVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 1, 0}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{-1, 1, 0}},
		{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 1, 1}},
	}
	indices := []uint32{0, 2, 1}

	s := NewSurfaceSampler(verts, indices, WithSamplerSeed(5))
	for i := 0; i < 50; i++ {
		_, normal, ok := s.Sample()
		require.True(t, ok)
		assert.InDelta(t, 1.0, float64(normal.Len()), 1e-5, "interpolated normals are re-normalized")
		assert.Greater(t, normal.Y(), float32(0))
	}
}

func TestSurfaceSamplerEmptyMesh(t *testing.T) {
	s := NewSurfaceSampler(nil, nil)
	assert.Equal(t, 0, s.TriangleCount())
	assert.Equal(t, float32(0), s.TotalArea())
	_, _, ok := s.Sample()
	assert.False(t, ok)
}
