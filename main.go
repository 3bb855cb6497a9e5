package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sdeu/go-rt/pkg/core"
	"github.com/sdeu/go-rt/pkg/loaders"
	"github.com/sdeu/go-rt/pkg/renderer"
	"github.com/sdeu/go-rt/pkg/scene"
)

// scenesDir is searched for scene files named without a path
const scenesDir = "scenes"

// Config holds the resolved command line options
type Config struct {
	SceneType  string
	ConfigFile string
	OutputFile string
	Sampling   core.SamplingConfig // Zero fields keep the scene's values
}

// flagValues holds the registered command line flags
type flagValues struct {
	scene, config, out                 *string
	width, height, spp, depth, workers *int
	help                               *bool
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	return &flagValues{
		scene:   fs.String("scene", "spheres", "Scene: a built-in name, a name in scenes/, or a .scene file path"),
		config:  fs.String("config", "", "JSON render config file"),
		out:     fs.String("out", "image.png", "Output image path (.png or .jpg)"),
		width:   fs.Int("width", 0, "Image width (0 = scene default)"),
		height:  fs.Int("height", 0, "Image height (0 = scene default)"),
		spp:     fs.Int("spp", 0, "Samples per pixel (0 = scene default)"),
		depth:   fs.Int("depth", 0, "Maximum bounce depth (0 = scene default)"),
		workers: fs.Int("workers", 0, "Number of worker goroutines (0 = number of CPUs)"),
		help:    fs.Bool("help", false, "Show help information"),
	}
}

func main() {
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)
	config, help, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if help {
		showHelp(fs)
		return
	}

	if err := run(config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments. Values from a -config file are
// merged in by run; explicit flags always win.
func parseFlags(fs *flag.FlagSet, args []string) (Config, bool, error) {
	flags := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}

	config := Config{
		ConfigFile: *flags.config,
		Sampling: core.SamplingConfig{
			Width:           *flags.width,
			Height:          *flags.height,
			SamplesPerPixel: *flags.spp,
			MaxDepth:        *flags.depth,
			NumWorkers:      *flags.workers,
		},
	}

	// Leave scene and output empty when not given so a config file can set them
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if explicit["scene"] || *flags.config == "" {
		config.SceneType = *flags.scene
	}
	if explicit["out"] || *flags.config == "" {
		config.OutputFile = *flags.out
	}

	return config, *flags.help, nil
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")

	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
		return
	}
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Printf("  %-28s %s: %s\n", info.ID, info.Name, info.Description)
		} else {
			fmt.Printf("  %-28s %s\n", info.ID, info.Name)
		}
	}
	fmt.Println()
	fmt.Println("Flags override values from -config, which override the scene's own settings.")
}

// resolveConfig merges a JSON render config under the command line options
func resolveConfig(config Config) (Config, error) {
	if config.ConfigFile != "" {
		fileConfig, err := loaders.LoadRenderConfig(config.ConfigFile)
		if err != nil {
			return config, err
		}
		config.Sampling = core.MergeSamplingConfig(fileConfig.Sampling, config.Sampling)
		if config.SceneType == "" {
			config.SceneType = fileConfig.Scene
		}
		if config.OutputFile == "" {
			config.OutputFile = fileConfig.Output
		}
	}

	if config.SceneType == "" {
		config.SceneType = "spheres"
	}
	if config.OutputFile == "" {
		config.OutputFile = "image.png"
	}
	return config, nil
}

// createScene resolves a scene name: built-in scenes first, then
// scenes/<name>.scene, then a direct path
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if !strings.HasSuffix(sceneType, scene.SceneFileExt) {
		for _, info := range scene.BuiltinScenes() {
			if info.ID == sceneType {
				return scene.Load(sceneType)
			}
		}

		candidate := filepath.Join(scenesDir, sceneType+scene.SceneFileExt)
		if _, err := os.Stat(candidate); err == nil {
			return scene.LoadFileScene(candidate)
		}
	}

	return scene.Load(sceneType)
}

// progressLogger logs every tenth of the rows collected
func progressLogger(logger core.Logger) renderer.ProgressFunc {
	nextPercent := 10.0
	return func(c renderer.RowCompletion) {
		if c.Percent < nextPercent {
			return
		}
		logger.Printf("Rendered %d/%d rows (%.0f%%)\n", c.RowsCompleted, c.TotalRows, c.Percent)
		for nextPercent <= c.Percent {
			nextPercent += 10
		}
	}
}

// run renders the configured scene and saves the image. Configuration
// errors are returned; a failed save is logged by the renderer.
func run(config Config, logger core.Logger) error {
	config, err := resolveConfig(config)
	if err != nil {
		return err
	}

	logger.Printf("Using %s scene...\n", config.SceneType)
	selectedScene, err := createScene(config.SceneType)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	if err := selectedScene.ApplySamplingConfig(config.Sampling); err != nil {
		return err
	}

	writer, err := loaders.NewImageWriter(config.OutputFile)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(selectedScene, writer, logger)
	if err != nil {
		return err
	}
	r.SetProgressCallback(progressLogger(logger))

	logger.Printf("Scene has %d spheres\n", selectedScene.GetPrimitiveCount())
	stats := r.Render()

	logger.Printf("Render completed in %v (%.0f samples/s)\n",
		stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())
	if stats.SaveError == nil {
		logger.Printf("Render saved as %s\n", config.OutputFile)
	}
	return nil
}
