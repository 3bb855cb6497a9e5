package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/geometry"
	"github.com/sdeu/go-rt/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	albedo    core.Vec3
	scatterFn func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool)
}

func (m *MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
	return m.scatterFn(rayIn, hit, random)
}

func (m *MockMaterial) Albedo() core.Vec3 { return m.albedo }

// MockShape implements geometry.Shape for testing
type MockShape struct {
	material material.Material
	hitFn    func(ray core.Ray) (*material.HitRecord, bool)
}

func (m *MockShape) Hit(ray core.Ray) (*material.HitRecord, bool) {
	return m.hitFn(ray)
}

func (m *MockShape) MaterialAt(hit *material.HitRecord) material.Material {
	return m.material
}

// MockScene implements Scene for testing
type MockScene struct {
	camera *geometry.Camera
	shapes []geometry.Shape
	config core.SamplingConfig
}

func (m *MockScene) GetCamera() *geometry.Camera            { return m.camera }
func (m *MockScene) GetShapes() []geometry.Shape            { return m.shapes }
func (m *MockScene) GetSamplingConfig() core.SamplingConfig { return m.config }

func newMockScene(t *testing.T, width, height int, shapes ...geometry.Shape) *MockScene {
	t.Helper()

	camera, err := geometry.NewLookAtCamera(geometry.CameraConfig{
		Eye:    core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
		Width:  width,
		Height: height,
	})
	if err != nil {
		t.Fatalf("Unexpected error creating camera: %v", err)
	}

	config := core.DefaultSamplingConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = 4
	config.MaxDepth = 5

	return &MockScene{camera: camera, shapes: shapes, config: config}
}

func newTestSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphereAt(center, radius, mat)
	if err != nil {
		t.Fatalf("Unexpected error creating sphere: %v", err)
	}
	return sphere
}

func TestRaytracer_SkyGradientBoundaries(t *testing.T) {
	raytracer := NewRaytracer(newMockScene(t, 10, 10))
	random := rand.New(rand.NewSource(42))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up is sky blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"unnormalized up", core.NewVec3(0, 10, 0), core.NewVec3(0.5, 0.7, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), 5, random)
			if color != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}

	horizon := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 5, random)
	expected := core.NewVec3(0.75, 0.85, 1.0)
	if horizon.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected horizon %v, got %v", expected, horizon)
	}
}

func TestRaytracer_NegativeDepthIsBlack(t *testing.T) {
	raytracer := NewRaytracer(newMockScene(t, 10, 10))
	random := rand.New(rand.NewSource(42))

	color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), -1, random)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for depth < 0, got %v", color)
	}
}

func TestRaytracer_AlbedoAttenuatesScatteredRadiance(t *testing.T) {
	mat := &MockMaterial{
		albedo: core.NewVec3(0.5, 0.25, 1.0),
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
			return core.NewRay(hit.Point, core.NewVec3(0, 1, 0)), true // Straight up into the sky
		},
	}

	// Only hit on the initial ray, not the scattered ray
	shape := &MockShape{
		material: mat,
		hitFn: func(ray core.Ray) (*material.HitRecord, bool) {
			if ray.Direction.Y < 0 {
				return &material.HitRecord{
					Point:  core.NewVec3(0, -1, 0),
					Normal: core.NewVec3(0, 1, 0),
					T:      1.0,
				}, true
			}
			return nil, false
		},
	}

	raytracer := NewRaytracer(newMockScene(t, 10, 10, shape))
	random := rand.New(rand.NewSource(42))

	color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)), 5, random)
	expected := core.NewVec3(0.25, 0.175, 1.0)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRaytracer_AbsorbedRayIsBlack(t *testing.T) {
	mat := &MockMaterial{
		albedo: core.NewVec3(1, 1, 1),
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
			return core.Ray{}, false
		},
	}
	shape := &MockShape{
		material: mat,
		hitFn: func(ray core.Ray) (*material.HitRecord, bool) {
			return &material.HitRecord{Point: ray.At(1), Normal: ray.Direction.Negate(), T: 1}, true
		},
	}

	raytracer := NewRaytracer(newMockScene(t, 10, 10, shape))
	color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 5, rand.New(rand.NewSource(42)))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestRaytracer_NearestHitWins(t *testing.T) {
	absorb := func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
		return core.NewRay(hit.Point, core.NewVec3(0, 1, 0)), true
	}
	near := &MockMaterial{albedo: core.NewVec3(1, 0, 0), scatterFn: absorb}
	far := &MockMaterial{albedo: core.NewVec3(0, 0, 1), scatterFn: absorb}
	behind := &MockMaterial{albedo: core.NewVec3(0, 1, 0), scatterFn: absorb}

	shapeAt := func(mat material.Material, t float64) *MockShape {
		return &MockShape{
			material: mat,
			hitFn: func(ray core.Ray) (*material.HitRecord, bool) {
				if ray.Direction.Z >= 0 {
					return nil, false
				}
				return &material.HitRecord{Point: ray.At(t), Normal: core.NewVec3(0, 0, 1), T: t}, true
			},
		}
	}

	// Order in the scene does not matter, and hits with t <= 0 are ignored
	raytracer := NewRaytracer(newMockScene(t, 10, 10,
		shapeAt(far, 5), shapeAt(behind, -1), shapeAt(near, 2), shapeAt(behind, 0)))

	color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 5, rand.New(rand.NewSource(42)))
	expected := core.NewVec3(0.5, 0, 0) // red albedo times sky blue
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected nearest (red) surface %v, got %v", expected, color)
	}
}

func TestRaytracer_NaNDistanceIsIgnored(t *testing.T) {
	black := &MockMaterial{
		albedo: core.NewVec3(0, 0, 0),
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
			return core.Ray{}, false
		},
	}
	broken := &MockShape{
		material: black,
		hitFn: func(ray core.Ray) (*material.HitRecord, bool) {
			return &material.HitRecord{Point: ray.At(1), Normal: core.NewVec3(0, 0, 1), T: math.NaN()}, true
		},
	}

	raytracer := NewRaytracer(newMockScene(t, 10, 10, broken))
	color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 5, rand.New(rand.NewSource(42)))

	expected := core.NewVec3(0.5, 0.7, 1.0)
	if color != expected {
		t.Errorf("Expected sky %v past a NaN hit, got %v", expected, color)
	}
}

func TestRaytracer_DepthTermination(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 5, 50} {
		scatterCalls := 0
		mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9))
		counting := &MockMaterial{
			albedo: mirror.Albedo(),
			scatterFn: func(rayIn core.Ray, hit material.HitRecord, random *rand.Rand) (core.Ray, bool) {
				scatterCalls++
				return mirror.Scatter(rayIn, hit, random)
			},
		}

		// Two facing mirror spheres trap a ray bouncing along the X axis
		left := newTestSphere(t, core.NewVec3(-3, 0, 0), 1, counting)
		right := newTestSphere(t, core.NewVec3(3, 0, 0), 1, counting)
		raytracer := NewRaytracer(newMockScene(t, 10, 10, left, right))

		color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), maxDepth, rand.New(rand.NewSource(42)))

		if scatterCalls > maxDepth+1 {
			t.Errorf("Depth %d: expected at most %d scatter events, got %d", maxDepth, maxDepth+1, scatterCalls)
		}
		if !color.IsFinite() {
			t.Errorf("Depth %d: expected finite color, got %v", maxDepth, color)
		}
		if color != (core.Vec3{}) {
			t.Errorf("Depth %d: expected trapped ray to end black, got %v", maxDepth, color)
		}
	}
}

func TestRaytracer_EnergyNonNegative(t *testing.T) {
	diffuse := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.2))
	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9))

	raytracer := NewRaytracer(newMockScene(t, 10, 10,
		newTestSphere(t, core.NewVec3(0, -100.5, -1), 100, diffuse),
		newTestSphere(t, core.NewVec3(0, 0, -1), 0.5, diffuse),
		newTestSphere(t, core.NewVec3(1, 0, -1), 0.5, mirror),
		newTestSphere(t, core.NewVec3(-1, 0, -1), 0.5, mirror),
	))
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		direction := core.RandomUnitVector(random)
		color := raytracer.Trace(core.NewRay(core.NewVec3(0, 0.2, 0), direction), 8, random)

		if color.X < 0 || color.Y < 0 || color.Z < 0 {
			t.Fatalf("Negative energy %v for direction %v", color, direction)
		}
		if !color.IsFinite() {
			t.Fatalf("Non-finite color %v for direction %v", color, direction)
		}
		if color.X > 1 || color.Y > 1 || color.Z > 1 {
			t.Fatalf("Color %v brighter than the sky for direction %v", color, direction)
		}
	}
}

func TestRaytracer_RenderRow(t *testing.T) {
	raytracer := NewRaytracer(newMockScene(t, 16, 8))
	random := rand.New(rand.NewSource(42))

	top := raytracer.RenderRow(0, random)
	bottom := raytracer.RenderRow(7, random)

	if len(top) != 16 || len(bottom) != 16 {
		t.Fatalf("Expected 16 pixels per row, got %d and %d", len(top), len(bottom))
	}

	// Looking down -Z with an empty scene, the top row sees more sky blue
	for i := range top {
		if top[i].X >= bottom[i].X {
			t.Errorf("Pixel %d: expected top row (%v) bluer than bottom row (%v)", i, top[i], bottom[i])
		}
		if math.Abs(top[i].Z-1) > 1e-12 {
			t.Errorf("Pixel %d: expected blue channel 1, got %f", i, top[i].Z)
		}
	}
}
