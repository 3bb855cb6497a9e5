package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sdeu/go-rt/pkg/core"
)

// RenderState is the lifecycle state of a Renderer
type RenderState int32

const (
	StateRendering RenderState = iota // Workers active, rows outstanding
	StateDone                         // All rows collected, image persisted
)

func (s RenderState) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("RenderState(%d)", int32(s))
	}
}

// Renderer distributes scanlines over a worker pool and assembles them into a film
type Renderer struct {
	scene     Scene
	config    core.SamplingConfig
	raytracer *Raytracer
	film      *Film
	writer    ImageWriter  // May be nil to skip persistence
	logger    core.Logger  // Logger for rendering output
	progress  ProgressFunc // Optional progress callback
	state     atomic.Int32
}

// NewRenderer creates a renderer for scene. The scene camera must have been
// built for the configured film size.
func NewRenderer(scene Scene, writer ImageWriter, logger core.Logger) (*Renderer, error) {
	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}

	camera := scene.GetCamera()
	if camera == nil {
		return nil, fmt.Errorf("scene has no camera")
	}
	if width, height := camera.Size(); width != config.Width || height != config.Height {
		return nil, fmt.Errorf("camera built for %dx%d but film is %dx%d", width, height, config.Width, config.Height)
	}

	if logger == nil {
		logger = NewDefaultLogger()
	}

	r := &Renderer{
		scene:     scene,
		config:    config,
		raytracer: NewRaytracer(scene),
		film:      NewFilm(config.Width, config.Height, config.Gamma),
		writer:    writer,
		logger:    logger,
	}
	r.state.Store(int32(StateRendering))
	return r, nil
}

// SetProgressCallback registers fn to receive row completions
func (r *Renderer) SetProgressCallback(fn ProgressFunc) {
	r.progress = fn
}

// Film returns the output film
func (r *Renderer) Film() *Film {
	return r.film
}

// State returns the current lifecycle state
func (r *Renderer) State() RenderState {
	return RenderState(r.state.Load())
}

// Render renders every row, blocks until all of them are in the film, then
// saves the image once. A save failure is logged and reported in the stats.
func (r *Renderer) Render() RenderStats {
	r.state.Store(int32(StateRendering))
	startTime := time.Now()

	queue := NewRowQueue(r.config.Height)
	pool := NewWorkerPool(r.raytracer, queue, r.config.Workers())

	r.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (using %d workers)...\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.MaxDepth, pool.GetNumWorkers())

	pool.Start()

	done := make(chan int)
	go r.collect(pool.Results(), queue.Len(), done)
	rowsCollected := <-done

	stats := RenderStats{
		TotalRows:       rowsCollected,
		TotalPixels:     rowsCollected * r.config.Width,
		TotalSamples:    rowsCollected * r.config.Width * r.config.SamplesPerPixel,
		SamplesPerPixel: r.config.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		Duration:        time.Since(startTime),
	}

	if r.writer != nil {
		if err := r.film.Save(r.writer); err != nil {
			r.logger.Printf("%v\n", err)
			stats.SaveError = err
		} else {
			r.logger.Printf("Image saved successfully\n")
		}
	}

	r.state.Store(int32(StateDone))
	return stats
}

// collect is the only writer of the film. Rows arrive in completion order
// and are placed by index.
func (r *Renderer) collect(results <-chan RowResult, totalRows int, done chan<- int) {
	completed := 0
	for result := range results {
		r.film.SetRow(result.Row, result.Pixels)
		completed++

		if r.progress != nil {
			r.progress(newRowCompletion(result.Row, completed, totalRows))
		}
	}
	done <- completed
}
