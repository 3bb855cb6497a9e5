package geometry

import (
	"fmt"
	"math"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/material"
)

// Sphere is a sphere centered at the origin of its own object space
type Sphere struct {
	Radius        float64
	ObjectToWorld core.Mat4
	WorldToObject core.Mat4 // Cached inverse of ObjectToWorld
	Material      material.Material
}

// NewSphere creates a new sphere placed in the world by objectToWorld
func NewSphere(radius float64, objectToWorld core.Mat4, mat material.Material) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius must be positive and finite, got %g", radius)
	}

	worldToObject, err := objectToWorld.Inverse()
	if err != nil {
		return nil, fmt.Errorf("sphere transform: %w", err)
	}

	return &Sphere{
		Radius:        radius,
		ObjectToWorld: objectToWorld,
		WorldToObject: worldToObject,
		Material:      mat,
	}, nil
}

// NewSphereAt creates a sphere translated to center
func NewSphereAt(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	return NewSphere(radius, core.Translate(center.X, center.Y, center.Z), mat)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (*material.HitRecord, bool) {
	local := ray.Transform(s.WorldToObject)
	origin := local.Origin
	direction := local.Direction

	// Quadratic equation coefficients: at² + bt + c = 0
	a := direction.Dot(direction)
	b := 2 * direction.Dot(origin)
	c := origin.Dot(origin) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	// Stable form avoids cancellation between b and sqrt(discriminant)
	rootD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = -0.5 * (b - rootD)
	} else {
		q = -0.5 * (b + rootD)
	}
	if q == 0 {
		return nil, false
	}

	t0 := q / a
	t1 := c / q

	if t0 <= 0 && t1 <= 0 {
		return nil, false
	}

	t := min(t0, t1)
	if t <= 0 {
		t = max(t0, t1)
	}

	localPoint := local.At(t)
	localNormal := localPoint.Multiply(1.0 / s.Radius)

	return &material.HitRecord{
		Point:  s.ObjectToWorld.TransformPoint(localPoint),
		Normal: s.ObjectToWorld.TransformVector(localNormal).Normalize(),
		T:      t,
	}, true
}

// MaterialAt implements the Shape interface
func (s *Sphere) MaterialAt(hit *material.HitRecord) material.Material {
	return s.Material
}
