package scene

import (
	"fmt"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/geometry"
	"github.com/sdeu/go-rt/pkg/material"
)

// Scene contains all the elements needed for rendering. It is not mutated
// while a render is in progress.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	SamplingConfig core.SamplingConfig
}

// NewScene builds the camera for config's film size and assembles a scene
func NewScene(cameraConfig geometry.CameraConfig, shapes []geometry.Shape, config core.SamplingConfig) (*Scene, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}

	cameraConfig.Width = config.Width
	cameraConfig.Height = config.Height
	camera, err := geometry.NewLookAtCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	s := &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		Shapes:         shapes,
		SamplingConfig: config,
	}
	s.applyEpsilon()
	return s, nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetShapes returns the scene shapes
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetSamplingConfig returns the scene's sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// ApplySamplingConfig merges override into the scene's configuration. The
// camera is rebuilt when the film size changes. Must not be called while
// rendering.
func (s *Scene) ApplySamplingConfig(override core.SamplingConfig) error {
	merged := core.MergeSamplingConfig(s.SamplingConfig, override)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}

	if merged.Width != s.SamplingConfig.Width || merged.Height != s.SamplingConfig.Height {
		cameraConfig := s.CameraConfig
		cameraConfig.Width = merged.Width
		cameraConfig.Height = merged.Height

		camera, err := geometry.NewLookAtCamera(cameraConfig)
		if err != nil {
			return fmt.Errorf("failed to create camera: %w", err)
		}
		s.Camera = camera
		s.CameraConfig = cameraConfig
	}

	s.SamplingConfig = merged
	s.applyEpsilon()
	return nil
}

// applyEpsilon pushes the configured scatter offset into the materials
func (s *Scene) applyEpsilon() {
	for _, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		switch m := sphere.Material.(type) {
		case *material.Lambertian:
			m.Epsilon = s.SamplingConfig.Epsilon
		case *material.Metal:
			m.Epsilon = s.SamplingConfig.Epsilon
		}
	}
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
