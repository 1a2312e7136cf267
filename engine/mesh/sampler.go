package mesh

import (
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/meadow-go/engine/model"
)

// SurfaceSampler draws uniformly distributed random points from the upward
// facing triangles of a mesh. Triangles are selected with probability
// proportional to their area, so sample density is even regardless of how the
// mesh is tessellated.
type SurfaceSampler interface {
	// Sample returns one random surface point and the interpolated surface
	// normal at that point.
	//
	// Returns:
	//   - mgl32.Vec3: the sampled position.
	//   - mgl32.Vec3: the interpolated, normalized surface normal.
	//   - bool: false when the mesh has no triangles that pass the slope filter.
	Sample() (mgl32.Vec3, mgl32.Vec3, bool)

	// TriangleCount returns the number of triangles that passed the slope
	// filter and participate in sampling.
	//
	// Returns:
	//   - int: the candidate triangle count.
	TriangleCount() int

	// TotalArea returns the summed area of all candidate triangles.
	//
	// Returns:
	//   - float32: the total sampleable area.
	TotalArea() float32
}

type samplerTriangle struct {
	a, b, c        mgl32.Vec3
	na, nb, nc     mgl32.Vec3
	cumulativeArea float32
}

type surfaceSamplerImpl struct {
	triangles []samplerTriangle
	totalArea float32
	rng       *rand.Rand
}

var _ SurfaceSampler = (*surfaceSamplerImpl)(nil)

// SurfaceSamplerOption configures a SurfaceSampler during construction.
type SurfaceSamplerOption func(*surfaceSamplerOptions)

type surfaceSamplerOptions struct {
	slopeThreshold float32
	seed           int64
}

// WithSlopeThreshold sets the minimum dot product between a triangle's face
// normal and world up for the triangle to be sampleable. The default is 0.75,
// which keeps gentle slopes and rejects cliff faces.
//
// Parameters:
//   - threshold: minimum dot(face_normal, +Y), in [-1, 1].
//
// Returns:
//   - SurfaceSamplerOption: the option to apply.
func WithSlopeThreshold(threshold float32) SurfaceSamplerOption {
	return func(o *surfaceSamplerOptions) {
		o.slopeThreshold = threshold
	}
}

// WithSamplerSeed seeds the sampler's random source. Identical seeds over the
// same mesh produce identical sample sequences.
//
// Parameters:
//   - seed: the random source seed.
//
// Returns:
//   - SurfaceSamplerOption: the option to apply.
func WithSamplerSeed(seed int64) SurfaceSamplerOption {
	return func(o *surfaceSamplerOptions) {
		o.seed = seed
	}
}

// NewSurfaceSampler builds a SurfaceSampler over a triangle mesh.
//
// Parameters:
//   - vertices: the mesh vertex data.
//   - indices: triangle list indices into the vertex data; length must be a multiple of 3.
//   - opts: optional configuration.
//
// Returns:
//   - SurfaceSampler: the configured sampler.
func NewSurfaceSampler(vertices []model.GPUVertex, indices []uint32, opts ...SurfaceSamplerOption) SurfaceSampler {
	options := &surfaceSamplerOptions{
		slopeThreshold: 0.75,
		seed:           1,
	}
	for _, opt := range opts {
		opt(options)
	}

	up := mgl32.Vec3{0, 1, 0}
	s := &surfaceSamplerImpl{
		rng: rand.New(rand.NewSource(options.seed)),
	}
	for i := 0; i+2 < len(indices); i += 3 {
		va := vertices[indices[i]]
		vb := vertices[indices[i+1]]
		vc := vertices[indices[i+2]]
		a := mgl32.Vec3(va.Position)
		b := mgl32.Vec3(vb.Position)
		c := mgl32.Vec3(vc.Position)

		cross := b.Sub(a).Cross(c.Sub(a))
		area := cross.Len() / 2.0
		if area == 0 {
			continue
		}
		if cross.Normalize().Dot(up) < options.slopeThreshold {
			continue
		}

		s.totalArea += area
		s.triangles = append(s.triangles, samplerTriangle{
			a: a, b: b, c: c,
			na:             mgl32.Vec3(va.Normal),
			nb:             mgl32.Vec3(vb.Normal),
			nc:             mgl32.Vec3(vc.Normal),
			cumulativeArea: s.totalArea,
		})
	}
	return s
}

func (s *surfaceSamplerImpl) Sample() (mgl32.Vec3, mgl32.Vec3, bool) {
	if len(s.triangles) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	target := s.rng.Float32() * s.totalArea
	idx := sort.Search(len(s.triangles), func(i int) bool {
		return s.triangles[i].cumulativeArea >= target
	})
	if idx >= len(s.triangles) {
		idx = len(s.triangles) - 1
	}
	tri := s.triangles[idx]

	// Fold the unit square onto the triangle for a uniform barycentric pick.
	u := s.rng.Float32()
	v := s.rng.Float32()
	if u+v > 1 {
		u = 1 - u
		v = 1 - v
	}

	pos := tri.a.Add(tri.b.Sub(tri.a).Mul(u)).Add(tri.c.Sub(tri.a).Mul(v))
	normal := tri.na.Mul(1 - u - v).Add(tri.nb.Mul(u)).Add(tri.nc.Mul(v))
	if normal.Len() > 0 {
		normal = normal.Normalize()
	} else {
		normal = mgl32.Vec3{0, 1, 0}
	}
	return pos, normal, true
}

func (s *surfaceSamplerImpl) TriangleCount() int {
	return len(s.triangles)
}

func (s *surfaceSamplerImpl) TotalArea() float32 {
	return s.totalArea
}
