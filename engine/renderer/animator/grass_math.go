package animator

import "math"

// Constants for the per-blade yaw/flutter hash. The hash quantizes its input onto a
// large integer lattice and folds it through a prime-sized bucket space, giving a
// deterministic pseudo-random value in [0, 1) for any finite input.
const (
	grassHashScale   = 371311.0
	grassHashModulus = 91033.0
)

// GrassHash maps an arbitrary float input to a deterministic pseudo-random value
// in [0, 1). Equal inputs always produce equal outputs, so blades keep their yaw
// and flutter phase stable across frames. Negative inputs are wrapped into the
// positive bucket range before normalization.
//
// Parameters:
//   - x: the hash input, typically the sum of a blade's horizontal position components
//
// Returns:
//   - float32: a deterministic value in [0, 1)
func GrassHash(x float32) float32 {
	h := math.Mod(math.Floor(float64(x)*grassHashScale), grassHashModulus)
	if h < 0 {
		h += grassHashModulus
	}
	return float32(h / grassHashModulus)
}

// GrassInstanceIndex linearizes a 3D compute invocation coordinate into a flat
// instance buffer index. The mapping is a bijection over the dispatch extent
// (dimX × dimY × dimZ), so every invocation owns exactly one record and every
// record slot is written exactly once.
//
// Parameters:
//   - x, y, z: the invocation coordinate within the dispatch extent
//   - dimX, dimY: the dispatch extent along the x and y axes
//
// Returns:
//   - uint32: the flat index, z*dimX*dimY + y*dimX + x
func GrassInstanceIndex(x, y, z, dimX, dimY uint32) uint32 {
	return z*dimX*dimY + y*dimX + x
}

// GrassInitRecord builds the instance record the init compute pass writes for a
// given invocation: the origin is the invocation coordinate itself and the scale
// is 1. The placement is intentionally coordinate-derived so the buffer contents
// are fully determined by the dispatch extent; hosts that want surface-scattered
// placement seed the buffer from the CPU instead.
//
// Parameters:
//   - x, y, z: the invocation coordinate within the dispatch extent
//
// Returns:
//   - GPUGrassInstance: the seeded instance record
func GrassInitRecord(x, y, z uint32) GPUGrassInstance {
	return GPUGrassInstance{
		Origin: [3]float32{float32(x), float32(y), float32(z)},
		Scale:  1,
	}
}

// GrassHeightWeight computes the height interpolation weight for a vertex: the
// vertex's world height above the blade's reference height, clamped to [0, 1].
// Vertices at or below the reference height get 0 (rigid base, pure base tint);
// vertices a full unit or more above get 1 (maximum sway, pure tip tint).
//
// Parameters:
//   - y: the vertex's world-space height
//   - referenceHeight: the blade's reference height (the origin's y channel)
//
// Returns:
//   - float32: the weight in [0, 1]
func GrassHeightWeight(y, referenceHeight float32) float32 {
	w := y - referenceHeight
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// GrassYawAngle maps a hash value in [0, 1) to a yaw rotation in [0, 2π) radians.
//
// Parameters:
//   - hash: a hash value in [0, 1)
//
// Returns:
//   - float32: the yaw angle in radians
func GrassYawAngle(hash float32) float32 {
	return hash * 2 * math.Pi
}

// GrassRotateY rotates a vector about the world Y axis by the given angle using
// the Rodrigues rotation formula. For the Y axis the general formula collapses to
// a 2D rotation in the XZ plane with the y component unchanged.
//
// Parameters:
//   - v: the vector to rotate
//   - angle: the rotation angle in radians
//
// Returns:
//   - [3]float32: the rotated vector
func GrassRotateY(v [3]float32, angle float32) [3]float32 {
	sin := float32(math.Sin(float64(angle)))
	cos := float32(math.Cos(float64(angle)))
	return [3]float32{
		v[0]*cos + v[2]*sin,
		v[1],
		v[2]*cos - v[0]*sin,
	}
}

// GrassSwayOffset computes the horizontal x displacement for a blade vertex at a
// point in time. The displacement is the sum of two sine waves, a global wind wave
// driven by the shared wind frequency and the blade's horizontal position, and a
// flutter wave whose frequency is perturbed by the blade's hash so neighboring
// blades drift out of phase. The sum is gated by the height weight, so vertices at
// the blade base never move regardless of time or amplitude.
//
// Parameters:
//   - time: elapsed time in seconds
//   - windFrequency: the global sway frequency shared by all blades
//   - flutterFrequency: the base flutter frequency before hash perturbation
//   - amplitude: the displacement amplitude at full height weight
//   - hash: the blade's hash value in [0, 1)
//   - heightWeight: the vertex's height weight in [0, 1]
//   - posX, posZ: the blade's horizontal world position
//
// Returns:
//   - float32: the x displacement to add to the vertex position
func GrassSwayOffset(time, windFrequency, flutterFrequency, amplitude, hash, heightWeight, posX, posZ float32) float32 {
	wind := math.Sin(float64(windFrequency*time + posX + posZ))
	flutter := math.Sin(float64(flutterFrequency * (0.5 + hash) * time))
	return heightWeight * amplitude * float32(wind+flutter)
}

// GrassBladeColor computes the vertex color for a blade vertex by interpolating
// between a darkened base tint and a brightened tip tint using the height weight.
// Only the RGB channels are shaded; alpha interpolates between the raw tints.
//
// Parameters:
//   - baseTint: the RGBA tint at the blade base
//   - tipTint: the RGBA tint at the blade tip
//   - baseShade: the shading factor applied to the base tint's RGB channels
//   - tipShade: the shading factor applied to the tip tint's RGB channels
//   - heightWeight: the vertex's height weight in [0, 1]
//
// Returns:
//   - [4]float32: the interpolated RGBA vertex color
func GrassBladeColor(baseTint, tipTint [4]float32, baseShade, tipShade, heightWeight float32) [4]float32 {
	var out [4]float32
	for i := range 3 {
		out[i] = mixF32(baseTint[i]*baseShade, tipTint[i]*tipShade, heightWeight)
	}
	out[3] = mixF32(baseTint[3], tipTint[3], heightWeight)
	return out
}

// mixF32 is the WGSL mix() builtin: linear interpolation from a to b by t.
func mixF32(a, b, t float32) float32 {
	return a + (b-a)*t
}
