package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sdeu/go-rt/pkg/core"
)

// RenderConfig is the JSON render configuration file
type RenderConfig struct {
	Scene    string              `json:"scene,omitempty"`  // Built-in scene name or scene file path
	Output   string              `json:"output,omitempty"` // Image path, .png or .jpg
	Sampling core.SamplingConfig `json:"sampling"`         // Zero fields keep the scene's values
}

// LoadRenderConfig reads a render configuration from a JSON file
func LoadRenderConfig(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read render config: %w", err)
	}

	cfg, err := ParseRenderConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseRenderConfig decodes a render configuration, rejecting unknown fields
// and negative values
func ParseRenderConfig(data []byte) (*RenderConfig, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var cfg RenderConfig
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}

	s := cfg.Sampling
	if s.Width < 0 || s.Height < 0 || s.SamplesPerPixel < 0 || s.MaxDepth < 0 || s.NumWorkers < 0 {
		return nil, fmt.Errorf("invalid render config: negative sampling value in %+v", s)
	}
	if s.Gamma < 0 || s.Epsilon < 0 {
		return nil, fmt.Errorf("invalid render config: gamma and epsilon must not be negative")
	}

	return &cfg, nil
}
