package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Carmen-Shannon/meadow-go/engine/model"
)

// TerrainParams controls procedural terrain generation. The zero value is not
// usable; start from DefaultTerrainParams and override fields as needed.
type TerrainParams struct {
	// Size is the world-space extent of the terrain along X and Z. The mesh is
	// centered on the origin, spanning [-Size/2, Size/2] on both axes.
	Size float32

	// Cells is the number of quads along each axis. The mesh has
	// (Cells+1)² vertices and Cells² * 2 triangles.
	Cells int

	// Frequency scales world coordinates before noise lookup.
	Frequency float32

	// Persistence is the per-octave amplitude falloff.
	Persistence float32

	// Lacunarity is the per-octave frequency multiplier.
	Lacunarity float32

	// Octaves is the number of noise layers summed per sample.
	Octaves int

	// Amplitude scales the summed noise into a world-space height.
	Amplitude float32

	// Seed initializes the noise field. Identical seeds produce identical
	// terrain.
	Seed int64
}

// DefaultTerrainParams returns the rolling-meadow preset: a 128×128 quad grid
// with low-persistence, high-lacunarity fractal noise scaled to ±8 world units.
//
// Returns:
//   - TerrainParams: the default generation parameters.
func DefaultTerrainParams() TerrainParams {
	return TerrainParams{
		Size:        128.0,
		Cells:       128,
		Frequency:   0.032,
		Persistence: 0.11,
		Lacunarity:  11.0,
		Octaves:     4,
		Amplitude:   8.0,
		Seed:        0,
	}
}

// GenerateTerrain builds a heightfield mesh from fractal simplex noise. Vertex
// normals are the normalized sum of the face normals of every adjacent
// triangle, so shading stays smooth across quad seams. UVs span [0,1] over the
// full extent and vertex colors are white; surface color comes from the
// material.
//
// Parameters:
//   - params: generation parameters, typically DefaultTerrainParams with overrides.
//
// Returns:
//   - []model.GPUVertex: the generated vertex data.
//   - []uint32: triangle list indices into the vertex data.
func GenerateTerrain(params TerrainParams) ([]model.GPUVertex, []uint32) {
	noise := opensimplex.New(params.Seed)
	side := params.Cells + 1
	step := params.Size / float32(params.Cells)
	half := params.Size / 2.0

	heightAt := func(x, z float32) float32 {
		var sum float32
		amplitude := float32(1.0)
		frequency := params.Frequency
		for o := 0; o < params.Octaves; o++ {
			sum += amplitude * float32(noise.Eval2(float64(x*frequency), float64(z*frequency)))
			amplitude *= params.Persistence
			frequency *= params.Lacunarity
		}
		return sum * params.Amplitude
	}

	vertices := make([]model.GPUVertex, side*side)
	positions := make([]mgl32.Vec3, side*side)
	for zi := 0; zi < side; zi++ {
		for xi := 0; xi < side; xi++ {
			x := float32(xi)*step - half
			z := float32(zi)*step - half
			positions[zi*side+xi] = mgl32.Vec3{x, heightAt(x, z), z}
		}
	}

	indices := make([]uint32, 0, params.Cells*params.Cells*6)
	normals := make([]mgl32.Vec3, side*side)
	for zi := 0; zi < params.Cells; zi++ {
		for xi := 0; xi < params.Cells; xi++ {
			i0 := uint32(zi*side + xi)
			i1 := i0 + 1
			i2 := i0 + uint32(side)
			i3 := i2 + 1
			// Counter-clockwise when viewed from +Y.
			indices = append(indices, i0, i2, i1, i1, i2, i3)

			n0 := triangleNormal(positions[i0], positions[i2], positions[i1])
			n1 := triangleNormal(positions[i1], positions[i2], positions[i3])
			normals[i0] = normals[i0].Add(n0)
			normals[i2] = normals[i2].Add(n0).Add(n1)
			normals[i1] = normals[i1].Add(n0).Add(n1)
			normals[i3] = normals[i3].Add(n1)
		}
	}

	for i := range vertices {
		pos := positions[i]
		normal := normals[i]
		if normal.Len() > 0 {
			normal = normal.Normalize()
		} else {
			normal = mgl32.Vec3{0, 1, 0}
		}
		vertices[i] = model.GPUVertex{
			Position: [3]float32{pos.X(), pos.Y(), pos.Z()},
			Normal:   [3]float32{normal.X(), normal.Y(), normal.Z()},
			TexCoord: [2]float32{(pos.X() + half) / params.Size, (pos.Z() + half) / params.Size},
			Color:    [4]float32{1, 1, 1, 1},
			Tangent:  [4]float32{1, 0, 0, 1},
		}
	}

	return vertices, indices
}

func triangleNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
