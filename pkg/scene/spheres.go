package scene

import (
	"math/rand"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/geometry"
	"github.com/sdeu/go-rt/pkg/material"
)

// Random spheres layout
const (
	randomSphereCount   = 70
	randomSphereRadius  = 1.0
	randomSphereSpacing = 2.0 // Minimum center distance, spheres never overlap
)

// NewRandomSpheresScene scatters unit spheres over a large ground sphere.
// Each sphere is either a white mirror or a randomly colored diffuse
// surface with equal probability.
func NewRandomSpheresScene(random *rand.Rand) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Eye:    core.NewVec3(0, 5, 15),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}

	config := core.DefaultSamplingConfig()
	config.Width = 800
	config.Height = 600
	config.SamplesPerPixel = 300
	config.MaxDepth = 5

	shapes := make([]geometry.Shape, 0, randomSphereCount+1)
	for _, center := range randomSphereCenters(random, randomSphereCount) {
		var mat material.Material
		if random.Intn(2) == 0 {
			mat = material.NewMetal(core.NewVec3(1, 1, 1))
		} else {
			mat = material.NewLambertian(core.NewVec3(random.Float64(), random.Float64(), random.Float64()))
		}

		sphere, err := geometry.NewSphereAt(center, randomSphereRadius, mat)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, sphere)
	}

	ground, err := geometry.NewSphereAt(core.NewVec3(1, -300.5, -10), 300, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		return nil, err
	}
	shapes = append(shapes, ground)

	return NewScene(cameraConfig, shapes, config)
}

// randomSphereCenters returns count positions, the first at the origin,
// with every pair further apart than randomSphereSpacing
func randomSphereCenters(random *rand.Rand, count int) []core.Vec3 {
	centers := []core.Vec3{core.NewVec3(0, 0, 0)}

	for len(centers) < count {
		candidate := core.NewVec3(
			uniform(random, -20, 20),
			uniform(random, 0.3, 2),
			uniform(random, -10, 10),
		)

		overlaps := false
		for _, c := range centers {
			if candidate.Subtract(c).Length() <= randomSphereSpacing {
				overlaps = true
				break
			}
		}
		if !overlaps {
			centers = append(centers, candidate)
		}
	}

	return centers
}

func uniform(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// NewSimpleScene creates a diffuse sphere between two mirrors on a ground sphere
func NewSimpleScene() (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Eye:    core.NewVec3(0, 0.5, 2),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}

	config := core.DefaultSamplingConfig()
	config.Width = 400
	config.Height = 225
	config.SamplesPerPixel = 100
	config.MaxDepth = 10

	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianRed := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2))

	placements := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, lambertianGround},
		{core.NewVec3(0, 0, -1), 0.5, lambertianRed},
		{core.NewVec3(-1, 0, -1), 0.5, metalSilver},
		{core.NewVec3(1, 0, -1), 0.5, metalGold},
	}

	shapes := make([]geometry.Shape, 0, len(placements))
	for _, p := range placements {
		sphere, err := geometry.NewSphereAt(p.center, p.radius, p.mat)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, sphere)
	}

	return NewScene(cameraConfig, shapes, config)
}
