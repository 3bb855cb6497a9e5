package material

import (
	"math/rand"

	"github.com/sdeu/go-rt/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the continuation ray, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (core.Ray, bool)

	// Albedo returns the fixed per-channel reflectance
	Albedo() core.Vec3
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point  core.Vec3 // Point of intersection in world space
	Normal core.Vec3 // Outward unit surface normal in world space
	T      float64   // Parameter t along the ray, valid when > 0
}
