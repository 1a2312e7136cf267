package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBladeShape(t *testing.T) {
	verts, indices := GenerateBlade(0.12, 1.0)

	require.Len(t, verts, 7)
	require.Len(t, indices, 15, "two quad segments plus a tip triangle")
	for _, idx := range indices {
		assert.Less(t, int(idx), len(verts))
	}

	// Tip sits centered at full height.
	tip := verts[6]
	assert.Equal(t, [3]float32{0, 1.0, 0}, tip.Position)

	// Root ring spans the full width at y = 0.
	assert.Equal(t, float32(0), verts[0].Position[1])
	assert.Equal(t, float32(0), verts[1].Position[1])
	assert.InDelta(t, 0.12, verts[1].Position[0]-verts[0].Position[0], 1e-6)
}

func TestGenerateBladeTapers(t *testing.T) {
	verts, _ := GenerateBlade(0.2, 2.0)

	widthAt := func(ring int) float32 {
		return verts[ring*2+1].Position[0] - verts[ring*2].Position[0]
	}
	assert.Greater(t, widthAt(0), widthAt(1))
	assert.Greater(t, widthAt(1), widthAt(2))
}

func TestGenerateBladePassThroughAttributes(t *testing.T) {
	verts, _ := GenerateBlade(0.12, 1.0)

	for _, v := range verts {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal, "blade faces +Z before per-blade yaw")
		assert.Equal(t, [4]float32{1, 1, 1, 1}, v.Color, "white so the draw-time tint passes through")
		assert.Equal(t, float32(0), v.Position[2], "blade is flat")
	}

	// V coordinate tracks relative height for tip-fade effects.
	assert.Equal(t, float32(0), verts[0].TexCoord[1])
	assert.Equal(t, float32(1), verts[6].TexCoord[1])
}
