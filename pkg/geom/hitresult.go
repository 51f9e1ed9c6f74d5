package geom

import "github.com/itohio/wallflux/pkg/vec3"

// HitResult is the outcome of tracing a single ray against one
// triangle or a whole Mesh. Element is -1 until a Mesh assigns it the
// index of the triangle that produced the candidate hit.
type HitResult struct {
	Hit     bool
	Point   vec3.Vec3
	Element int
}

// miss is the zero-value-equivalent HitResult: no hit, no owner.
func miss() HitResult {
	return HitResult{Element: -1}
}
