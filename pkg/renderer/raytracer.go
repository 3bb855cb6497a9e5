package renderer

import (
	"math/rand"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/geometry"
	"github.com/sdeu/go-rt/pkg/material"
)

// Sky gradient endpoints
var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetShapes() []geometry.Shape
	GetSamplingConfig() core.SamplingConfig
}

// Raytracer evaluates light paths against a read-only scene.
// It holds no mutable state and is shared by all workers.
type Raytracer struct {
	camera *geometry.Camera
	shapes []geometry.Shape
	config core.SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene) *Raytracer {
	return &Raytracer{
		camera: scene.GetCamera(),
		shapes: scene.GetShapes(),
		config: scene.GetSamplingConfig(),
	}
}

// hitWorld finds the nearest hit with t > 0 by scanning every shape.
// A NaN distance never counts as a hit.
func (rt *Raytracer) hitWorld(ray core.Ray) (*material.HitRecord, geometry.Shape, bool) {
	var closestHit *material.HitRecord
	var closestShape geometry.Shape

	for _, shape := range rt.shapes {
		hit, isHit := shape.Hit(ray)
		if !isHit || !(hit.T > 0) {
			continue
		}
		if closestHit == nil || hit.T < closestHit.T {
			closestHit = hit
			closestShape = shape
		}
	}

	return closestHit, closestShape, closestHit != nil
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyBottom.Lerp(skyTop, t)
}

// Trace returns the radiance carried back along r. Recursion stops once
// depth drops below zero, so at most depth+1 surfaces are visited.
func (rt *Raytracer) Trace(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	if depth < 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, shape, isHit := rt.hitWorld(r)
	if !isHit {
		return rt.backgroundGradient(r)
	}

	mat := shape.MaterialAt(hit)
	scattered, didScatter := mat.Scatter(r, *hit, random)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return mat.Albedo().MultiplyVec(rt.Trace(scattered, depth-1, random))
}

// SamplePixel averages SamplesPerPixel jittered samples for pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, random *rand.Rand) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := float64(i) + random.Float64()
		v := float64(j) + random.Float64()

		ray := rt.camera.Ray(u, v)
		colorAccum = colorAccum.Add(rt.Trace(ray, rt.config.MaxDepth, random))
	}

	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// RenderRow renders every pixel of scanline j
func (rt *Raytracer) RenderRow(j int, random *rand.Rand) []core.Vec3 {
	row := make([]core.Vec3, rt.config.Width)
	for i := range row {
		row[i] = rt.SamplePixel(i, j, random)
	}
	return row
}
