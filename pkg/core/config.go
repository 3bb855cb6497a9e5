package core

import (
	"fmt"
	"runtime"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     `json:"width,omitempty"`           // Image width in pixels
	Height          int     `json:"height,omitempty"`          // Image height in pixels
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"` // Number of rays per pixel
	MaxDepth        int     `json:"maxDepth,omitempty"`        // Maximum ray bounce depth
	Gamma           float64 `json:"gamma,omitempty"`           // Channels are raised to 1/Gamma before quantization
	Epsilon         float64 `json:"epsilon,omitempty"`         // Scatter origin offset along the normal
	NumWorkers      int     `json:"numWorkers,omitempty"`      // Number of worker goroutines (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 300,
		MaxDepth:        5,
		Gamma:           2.0,
		Epsilon:         1e-4,
		NumWorkers:      0,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Gamma != 0 {
		result.Gamma = override.Gamma
	}
	if override.Epsilon != 0 {
		result.Epsilon = override.Epsilon
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Workers returns the effective worker count
func (c SamplingConfig) Workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Validate checks that the configuration can drive a render
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %g", c.Gamma)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must not be negative, got %g", c.Epsilon)
	}
	return nil
}
