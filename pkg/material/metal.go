package material

import (
	"math/rand"

	"github.com/sdeu/go-rt/pkg/core"
)

// Metal represents a perfect mirror
type Metal struct {
	Color   core.Vec3 // Metal color
	Epsilon float64   // Origin offset along the normal to avoid shadow acne
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3) *Metal {
	return &Metal{Color: albedo, Epsilon: DefaultEpsilon}
}

// Scatter implements the Material interface for mirror reflection
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Only scatter if the ray leaves the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return core.Ray{}, false
	}

	origin := hit.Point.Add(hit.Normal.Multiply(m.Epsilon))
	return core.NewRay(origin, reflected), true
}

// Albedo implements the Material interface
func (m *Metal) Albedo() core.Vec3 {
	return m.Color
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
