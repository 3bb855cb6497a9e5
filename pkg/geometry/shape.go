package geometry

import (
	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest forward intersection with a unit-direction ray
	Hit(ray core.Ray) (*material.HitRecord, bool)

	// MaterialAt returns the material to scatter with at a hit
	MaterialAt(hit *material.HitRecord) material.Material
}
