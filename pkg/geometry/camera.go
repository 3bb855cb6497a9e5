package geometry

import (
	"fmt"
	"math"

	"github.com/sdeu/go-rt/pkg/core"
)

// Default clip planes for the perspective projection
const (
	DefaultNear = 1.0
	DefaultFar  = 1000.0
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction (usually (0,1,0))
	VFov   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	Near   float64   // Near clip plane (0 = DefaultNear)
	Far    float64   // Far clip plane (0 = DefaultFar)
}

// Camera maps raster coordinates to world-space rays
type Camera struct {
	cameraToWorld      core.Mat4
	inversePerspective core.Mat4
	rasterToScreen     core.Mat4
	eye                core.Vec3
	vfov               float64
	width, height      int
}

// NewCamera creates a camera from a world-to-camera transform, a vertical
// field of view in radians and the film size in pixels
func NewCamera(worldToCamera core.Mat4, vfov float64, width, height int, near, far float64) (*Camera, error) {
	if !(vfov > 0 && vfov < math.Pi) {
		return nil, fmt.Errorf("field of view must be in (0, π) radians, got %g", vfov)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid film size %dx%d", width, height)
	}
	if !(near > 0 && far > near) || math.IsInf(far, 0) {
		return nil, fmt.Errorf("invalid clip planes near=%g far=%g", near, far)
	}

	cameraToWorld, err := worldToCamera.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera transform: %w", err)
	}

	aspectRatio := float64(width) / float64(height)
	perspective := core.Perspective(aspectRatio, vfov, near, far)
	inversePerspective, err := perspective.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera projection: %w", err)
	}

	// Screen space is [-1,1]² with +Y up, raster space has its origin at the
	// top-left pixel with +Y down
	w, h := float64(width), float64(height)
	screenToRaster := core.Translate(w/2, h/2, 0).Mul(core.Scale(w/2, -h/2, 1))
	rasterToScreen, err := screenToRaster.Inverse()
	if err != nil {
		return nil, fmt.Errorf("raster transform: %w", err)
	}

	return &Camera{
		cameraToWorld:      cameraToWorld,
		inversePerspective: inversePerspective,
		rasterToScreen:     rasterToScreen,
		eye:                cameraToWorld.TransformPoint(core.NewVec3(0, 0, 0)),
		vfov:               vfov,
		width:              width,
		height:             height,
	}, nil
}

// NewLookAtCamera creates a camera from an eye, a target and an up vector
func NewLookAtCamera(config CameraConfig) (*Camera, error) {
	near, far := config.Near, config.Far
	if near == 0 {
		near = DefaultNear
	}
	if far == 0 {
		far = DefaultFar
	}

	view := core.LookAt(config.Eye, config.LookAt, config.Up)
	vfov := config.VFov * math.Pi / 180.0
	return NewCamera(view, vfov, config.Width, config.Height, near, far)
}

// Ray generates the world-space ray through raster coordinates (u, v).
// Both origin and direction are expressed in world space.
func (c *Camera) Ray(u, v float64) core.Ray {
	// Point on the far plane in normalized device coordinates
	ndc := c.rasterToScreen.TransformPoint(core.NewVec3(u, v, 1))
	viewPoint := c.inversePerspective.ProjectPoint(ndc)

	direction := c.cameraToWorld.TransformVector(viewPoint).Normalize()
	return core.NewRay(c.eye, direction)
}

// Eye returns the camera position in world space
func (c *Camera) Eye() core.Vec3 {
	return c.eye
}

// VFov returns the vertical field of view in radians
func (c *Camera) VFov() float64 {
	return c.vfov
}

// Size returns the film dimensions the camera was built for
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}
