package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"unit X", NewVec3(1, 0, 0), NewVec3(1, 0, 0)},
		{"scaled Y", NewVec3(0, 5, 0), NewVec3(0, 1, 0)},
		{"3-4-5", NewVec3(3, 4, 0), NewVec3(0.6, 0.8, 0)},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero(1e-8) {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-3, 0).NearZero(1e-8) {
		t.Error("Expected vector with one large component not to be near zero")
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	sky := NewVec3(0.5, 0.7, 1.0)

	if got := white.Lerp(sky, 0); got != white {
		t.Errorf("Expected %v at t=0, got %v", white, got)
	}
	if got := white.Lerp(sky, 1); got != sky {
		t.Errorf("Expected %v at t=1, got %v", sky, got)
	}

	mid := white.Lerp(sky, 0.5)
	expected := NewVec3(0.75, 0.85, 1.0)
	if mid.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v at t=0.5, got %v", expected, mid)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN vector to be reported as not finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Expected infinite vector to be reported as not finite")
	}
}

func TestRay_Transform(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	moved := ray.Transform(Translate(10, 0, 0))

	if moved.Origin != NewVec3(11, 2, 3) {
		t.Errorf("Expected origin to be translated, got %v", moved.Origin)
	}
	if moved.Direction != NewVec3(0, 0, -1) {
		t.Errorf("Expected direction to ignore translation, got %v", moved.Direction)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 3), NewVec3(0, 0, -1))
	if got := ray.At(2); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", got)
	}
}
