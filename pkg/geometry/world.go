package geometry

import "github.com/df07/go-sphere-raytracer/pkg/core"

// World is an ordered collection of shapes. It is read-only once rendering starts.
type World struct {
	shapes []Shape
}

// NewWorld creates a world from the given shapes, preserving their order
func NewWorld(shapes ...Shape) *World {
	w := &World{shapes: make([]Shape, 0, len(shapes))}
	w.shapes = append(w.shapes, shapes...)
	return w
}

// Add appends a shape to the world
func (w *World) Add(shape Shape) {
	w.shapes = append(w.shapes, shape)
}

// Shapes returns the shapes in iteration order
func (w *World) Shapes() []Shape {
	return w.shapes
}

// Len returns the number of shapes
func (w *World) Len() int {
	return len(w.shapes)
}

// Hit returns the closest hit among all shapes in the world
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	return ClosestHit(ray, tMin, tMax, w.shapes)
}

// closestHitState is the accumulator threaded through ClosestHit
type closestHitState struct {
	best         HitRecord
	found        bool
	closestSoFar float64
}

func (s closestHitState) visit(ray core.Ray, tMin float64, shape Shape) closestHitState {
	hit, ok := shape.Hit(ray, tMin, s.closestSoFar)
	if !ok {
		return s
	}
	return closestHitState{best: hit, found: true, closestSoFar: hit.T}
}

// ClosestHit finds the nearest intersection in [tMin, tMax] among shapes.
// Each shape is tested against an interval that shrinks to the closest hit found
// so far. When two shapes hit at exactly the same t, which one is returned
// depends on iteration order.
func ClosestHit(ray core.Ray, tMin, tMax float64, shapes []Shape) (HitRecord, bool) {
	state := closestHitState{closestSoFar: tMax}
	for _, shape := range shapes {
		state = state.visit(ray, tMin, shape)
	}
	return state.best, state.found
}
