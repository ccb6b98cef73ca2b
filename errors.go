package newsclust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/newsclust/internal/kmeans"
)

var (
	// ErrInvalidParameter is returned for a non-positive k, iteration budget
	// or tolerance, or an unknown empty-cluster policy.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData is returned when there are fewer observations than k.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNonFinite is returned when an observation holds NaN or an infinity.
	ErrNonFinite = errors.New("non-finite observation")
)

// ErrDimensionMismatch indicates an observation whose dimensionality differs
// from the rest of the dataset.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at observation %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrInvalidParameter) {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if errors.Is(err, kmeans.ErrInsufficientData) {
		return fmt.Errorf("%w: %w", ErrInsufficientData, err)
	}
	if errors.Is(err, kmeans.ErrNonFinite) {
		return fmt.Errorf("%w: %w", ErrNonFinite, err)
	}

	var de *kmeans.DimensionError
	if errors.As(err, &de) {
		return &ErrDimensionMismatch{Index: de.Index, Expected: de.Expected, Actual: de.Actual, cause: err}
	}

	return err
}
