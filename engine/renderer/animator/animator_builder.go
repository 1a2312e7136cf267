package animator

import (
	"github.com/Carmen-Shannon/meadow-go/engine/model"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithMaxInstances is an option builder that sets the maximum number of instances the Animator can manage.
// No-op on grass backends, whose capacity is derived from the dispatch extent.
//
// Parameters:
//   - maxInstances: the maximum number of instances to support
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the max instances option to an animator
func WithMaxInstances(maxInstances int) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetMaxInstances(uint32(maxInstances))
	}
}

// WithModel is an option builder that assigns a Model to the Animator during construction.
//
// Parameters:
//   - m: the Model to associate with this animator
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the model option to an animator
func WithModel(m model.Model) AnimatorBuilderOption {
	return func(a *animator) {
		a.SetModel(m)
	}
}

// WithDispatchExtent is an option builder that sets the compute dispatch extent for a
// grass field animator, sizing the blade population to the extent's volume.
// No-op on simple backends.
//
// Parameters:
//   - x, y, z: the dispatch size along each axis; each must be at least 1
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the dispatch extent to an animator
func WithDispatchExtent(x, y, z uint32) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetDispatchExtent([3]uint32{x, y, z})
	}
}

// WithFieldParams is an option builder that sets the field-wide wind and tint parameters
// for a grass field animator. No-op on simple backends.
//
// Parameters:
//   - params: the field parameters to apply
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the field parameters to an animator
func WithFieldParams(params GrassFieldParams) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetFieldParams(params)
	}
}
