package scene

import (
	"fmt"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/geometry"
	"github.com/sdeu/go-rt/pkg/loaders"
	"github.com/sdeu/go-rt/pkg/material"
)

// Camera used when a scene file has no LookAt or Fov directive
var defaultFileCamera = geometry.CameraConfig{
	Eye:    core.NewVec3(0, 5, 15),
	LookAt: core.NewVec3(0, 0, 0),
	Up:     core.NewVec3(0, 1, 0),
	VFov:   90,
}

// LoadFileScene loads a scene description file and builds a Scene from it
func LoadFileScene(filename string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}
	return NewFileScene(sceneFile)
}

// NewFileScene builds a Scene from a parsed scene description. Spheres are
// created in file order, each material shared by all spheres naming it.
func NewFileScene(sceneFile *loaders.SceneFile) (*Scene, error) {
	cameraConfig := defaultFileCamera
	if sceneFile.LookAt != nil {
		cameraConfig.Eye = *sceneFile.LookAt
		cameraConfig.LookAt = *sceneFile.LookAtTo
		cameraConfig.Up = *sceneFile.LookAtUp
	}
	if sceneFile.Fov > 0 {
		cameraConfig.VFov = sceneFile.Fov
	}

	config := core.MergeSamplingConfig(core.DefaultSamplingConfig(), sceneFile.Sampling)
	if sceneFile.MaxDepth != nil {
		config.MaxDepth = *sceneFile.MaxDepth
	}
	if sceneFile.Epsilon != nil {
		config.Epsilon = *sceneFile.Epsilon
	}

	materials := make(map[string]material.Material, len(sceneFile.Materials))
	for _, def := range sceneFile.Materials {
		switch def.Kind {
		case loaders.MaterialSpecular:
			materials[def.Name] = material.NewMetal(def.Albedo)
		default:
			materials[def.Name] = material.NewLambertian(def.Albedo)
		}
	}

	shapes := make([]geometry.Shape, 0, len(sceneFile.Spheres))
	for _, def := range sceneFile.Spheres {
		mat, ok := materials[def.Material]
		if !ok {
			return nil, fmt.Errorf("line %d: sphere uses unknown material '%s'", def.Line, def.Material)
		}

		sphere, err := geometry.NewSphereAt(def.Center, def.Radius, mat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", def.Line, err)
		}
		shapes = append(shapes, sphere)
	}

	s, err := NewScene(cameraConfig, shapes, config)
	if err != nil {
		return nil, fmt.Errorf("scene file: %w", err)
	}
	return s, nil
}
