package mesh

import (
	"github.com/Carmen-Shannon/meadow-go/engine/model"
)

// GenerateBlade builds the shared grass blade mesh: a flat, tapered strip of
// three quad segments capped by a tip vertex, seven vertices in total. The
// blade is rooted at the origin, grows along +Y and faces +Z; per-blade yaw,
// scale and sway are applied in the vertex stage. Vertex colors are white so
// the gradient tint computed at draw time passes through unchanged.
//
// Parameters:
//   - width: blade width at the root in model units.
//   - height: blade height in model units.
//
// Returns:
//   - []model.GPUVertex: the blade vertex data.
//   - []uint32: triangle list indices into the vertex data.
func GenerateBlade(width, height float32) ([]model.GPUVertex, []uint32) {
	// Half-widths per ring, tapering toward the tip.
	taper := []float32{0.5, 0.4, 0.25}
	levels := []float32{0.0, 1.0 / 3.0, 2.0 / 3.0}

	vertices := make([]model.GPUVertex, 0, 7)
	for ring := 0; ring < 3; ring++ {
		hw := width * taper[ring]
		y := height * levels[ring]
		v := y / height
		vertices = append(vertices,
			bladeVertex(-hw, y, 0.0, v),
			bladeVertex(hw, y, 1.0, v),
		)
	}
	vertices = append(vertices, bladeVertex(0, height, 0.5, 1.0))

	indices := []uint32{
		0, 1, 2, 2, 1, 3, // root segment
		2, 3, 4, 4, 3, 5, // middle segment
		4, 5, 6, // tip
	}
	return vertices, indices
}

func bladeVertex(x, y, u, v float32) model.GPUVertex {
	return model.GPUVertex{
		Position: [3]float32{x, y, 0},
		Normal:   [3]float32{0, 0, 1},
		TexCoord: [2]float32{u, v},
		Color:    [4]float32{1, 1, 1, 1},
		Tangent:  [4]float32{1, 0, 0, 1},
	}
}
