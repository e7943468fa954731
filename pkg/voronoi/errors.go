package voronoi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSite indicates a site with a NaN or infinite coordinate.
	ErrInvalidSite = errors.New("voronoi: site coordinates must be finite")
	// ErrInvariant indicates that the beach line became structurally inconsistent.
	ErrInvariant = errors.New("voronoi: beach line invariant violated")
	// ErrBadBoundingBox indicates an empty or inverted clipping box.
	ErrBadBoundingBox = errors.New("voronoi: bounding box is empty")
)

// InvariantError describes a broken beach-line invariant. It is fatal: the
// builder refuses further steps once one has been returned.
type InvariantError struct {
	Op     string
	Detail string
	Sweep  float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("voronoi: %s at sweep %g: %s", e.Op, e.Sweep, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }
