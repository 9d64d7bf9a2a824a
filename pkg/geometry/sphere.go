package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidRadius is returned when a sphere is built with a non-positive or non-finite radius
var ErrInvalidRadius = errors.New("sphere radius must be positive and finite")

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	return &Sphere{
		Center: center,
		Radius: radius,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// A zero direction makes a == 0 below
	if ray.Validate() != nil {
		return HitRecord{}, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2(halfB)t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	hitRecord := HitRecord{
		T:     root,
		Point: ray.At(root),
	}

	// Outward normal is unit length because |point - center| == radius
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// Discriminant returns b² - 4ac for the full (not halved) quadratic.
// Negative means the ray's line misses, zero means tangent.
func (s *Sphere) Discriminant(ray core.Ray) float64 {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	return b*b - 4*a*c
}
