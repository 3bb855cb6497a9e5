package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalRows       int           // Number of scanlines collected
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for each pixel
	NumWorkers      int           // Worker goroutines used
	Duration        time.Duration // Wall time from start to collection of the last row
	SaveError       error         // Non-nil if persisting the image failed
}

// RowCompletion reports a scanline written to the film
type RowCompletion struct {
	Row           int     // Index of the completed row
	RowsCompleted int     // Rows collected so far, including this one
	TotalRows     int     // Rows in the image
	Percent       float64 // RowsCompleted / TotalRows * 100
}

// ProgressFunc receives row completions in collection order
type ProgressFunc func(RowCompletion)

// newRowCompletion builds the progress event for the n-th collected row
func newRowCompletion(row, completed, total int) RowCompletion {
	return RowCompletion{
		Row:           row,
		RowsCompleted: completed,
		TotalRows:     total,
		Percent:       float64(completed) * 100.0 / float64(total),
	}
}

// SamplesPerSecond returns throughput for the finished render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}
