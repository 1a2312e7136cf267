package animator

// AnimatorBackendType identifies the type of animation backend used by an Animator.
type AnimatorBackendType int

const (
	// BackendTypeSimple is the simple instanced animation backend, supporting per-instance
	// position, rotation, and scale driven by a compute shader.
	BackendTypeSimple AnimatorBackendType = iota

	// BackendTypeGrassField is the grass field backend, managing a fixed population of
	// blade instance records seeded by an init compute pass and advanced by a per-frame
	// update compute pass.
	BackendTypeGrassField
)

// AnimatorBackend is the union interface that all animation backends must implement.
// It embeds both simpleAnimatorBackend and grassFieldBackend, requiring concrete
// implementations to provide the full method set. Methods that do not apply to a given
// backend type are implemented as no-ops.
type AnimatorBackend interface {
	simpleAnimatorBackend
	grassFieldBackend
}
