package renderer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sdeu/go-rt/pkg/core"
)

// RowResult is a fully rendered scanline
type RowResult struct {
	Row    int
	Pixels []core.Vec3
}

// WorkerPool renders rows taken from a shared queue in parallel
type WorkerPool struct {
	raytracer   *Raytracer
	queue       *RowQueue
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows until the queue is empty
type Worker struct {
	ID          int
	raytracer   *Raytracer
	queue       *RowQueue
	resultQueue chan<- RowResult
	random      *rand.Rand // Not safe for concurrent use, owned by this worker
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, queue *RowQueue, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		raytracer:   raytracer,
		queue:       queue,
		resultQueue: make(chan RowResult, numWorkers),
		numWorkers:  numWorkers,
	}

	seed := time.Now().UnixNano()
	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			queue:       queue,
			resultQueue: wp.resultQueue,
			random:      rand.New(rand.NewSource(seed + int64(i)*7919)),
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start launches all workers. The result channel is closed once every
// worker has exited.
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}

	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Results returns the channel completed rows arrive on, in completion order
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		row, ok := w.queue.Steal()
		if !ok {
			return
		}

		w.resultQueue <- RowResult{
			Row:    row,
			Pixels: w.raytracer.RenderRow(row, w.random),
		}
	}
}
