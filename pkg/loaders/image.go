package loaders

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Supported output formats
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// JPEGQuality is the encoder quality used for .jpg output
const JPEGQuality = 95

// FileImageWriter encodes images to a file, choosing the format by extension
type FileImageWriter struct {
	Path   string
	Format string // FormatPNG or FormatJPEG
}

// NewImageWriter creates a writer for path. The extension must be .png,
// .jpg or .jpeg.
func NewImageWriter(path string) (*FileImageWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return &FileImageWriter{Path: path, Format: FormatPNG}, nil
	case ".jpg", ".jpeg":
		return &FileImageWriter{Path: path, Format: FormatJPEG}, nil
	default:
		return nil, fmt.Errorf("unsupported image format '%s': use .png or .jpg", filepath.Ext(path))
	}
}

// WriteImage encodes img to the writer's path, creating parent directories
func (w *FileImageWriter) WriteImage(img image.Image) error {
	if dir := filepath.Dir(w.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	switch w.Format {
	case FormatJPEG:
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", w.Format, err)
	}

	return file.Close()
}
