package core

import (
	"math"
	"math/rand"
)

// SampleOnUnitSphere maps two uniform samples in [0, 1) to a uniform
// direction on the unit sphere: azimuth in [0, 2π), z in [-1, 1]
func SampleOnUnitSphere(u1, u2 float64) Vec3 {
	theta := 2.0 * math.Pi * u1
	z := 2.0*u2 - 1.0
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), z)
}

// RandomUnitVector draws a uniformly distributed unit vector
func RandomUnitVector(random *rand.Rand) Vec3 {
	return SampleOnUnitSphere(random.Float64(), random.Float64())
}
