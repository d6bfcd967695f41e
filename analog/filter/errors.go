package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrSpec is returned for specifications that fail validation.
	ErrSpec = errors.New("filter: invalid specification")
	// ErrUnsupportedKind is returned for kinds without a denormalization.
	ErrUnsupportedKind = fmt.Errorf("%w: unsupported filter kind", ErrSpec)
	// ErrSynthesisExhausted is returned when no order satisfies the
	// maximum pole Q.
	ErrSynthesisExhausted = errors.New("filter: no approximation meets the maximum Q")
	// ErrForeignRoot is returned when a stage references a root that is not
	// part of the filter.
	ErrForeignRoot = errors.New("filter: root is not part of the filter")
	// ErrInvalidState is returned by operations on a filter in StateError.
	ErrInvalidState = errors.New("filter: filter is in error state")
	// ErrStageIndex is returned for stage indices out of range.
	ErrStageIndex = errors.New("filter: stage index out of range")
)
