package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when the dataset has fewer observations than k.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter is matched by every *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNonFinite is returned when an observation holds NaN or an infinity.
	ErrNonFinite = errors.New("non-finite observation")
)

// InvalidParameterError describes a rejected run parameter.
type InvalidParameterError struct {
	Name  string
	Value any
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", e.Name, e.Value)
}

// Is reports whether target is ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DimensionError reports an observation whose dimensionality differs from the
// first observation of the dataset.
type DimensionError struct {
	Index    int
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("observation %d: dimension mismatch: expected %d, got %d", e.Index, e.Expected, e.Actual)
}
