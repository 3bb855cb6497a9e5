package material

import (
	"math/rand"

	"github.com/sdeu/go-rt/pkg/core"
)

// DefaultEpsilon is the offset applied to scattered ray origins
const DefaultEpsilon = 1e-4

// degenerateEpsilon bounds the components of a scatter direction treated as zero
const degenerateEpsilon = 1e-8

// Lambertian represents a diffuse material
type Lambertian struct {
	Color   core.Vec3 // Base color/reflectance
	Epsilon float64   // Origin offset along the normal to avoid shadow acne
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Color: albedo, Epsilon: DefaultEpsilon}
}

// Scatter implements the Material interface for lambertian scattering.
// Lambertian surfaces never absorb.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, bool) {
	direction := scatterDirection(hit.Normal, core.RandomUnitVector(random))
	origin := hit.Point.Add(hit.Normal.Multiply(l.Epsilon))
	return core.NewRay(origin, direction), true
}

// Albedo implements the Material interface
func (l *Lambertian) Albedo() core.Vec3 {
	return l.Color
}

// scatterDirection offsets the normal by a random unit vector, falling back
// to the normal itself when the two cancel out
func scatterDirection(normal, unit core.Vec3) core.Vec3 {
	direction := normal.Add(unit)
	if direction.NearZero(degenerateEpsilon) {
		direction = normal
	}
	return direction.Normalize()
}
