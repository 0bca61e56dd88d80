package graphview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Format selects a page renderer
type Format string

const (
	FormatVis     Format = "vis"
	FormatECharts Format = "echarts"
)

// ParseFormat validates a renderer format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatVis, "":
		return FormatVis, nil
	case FormatECharts:
		return FormatECharts, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// WriteFunc writes one rendering of a network
type WriteFunc func(w io.Writer, n *Network) error

// WriterFor returns the page writer for a format
func WriterFor(format Format, opts HTMLOptions) WriteFunc {
	if format == FormatECharts {
		return func(w io.Writer, n *Network) error {
			return WriteECharts(w, n, opts.Title)
		}
	}
	return func(w io.Writer, n *Network) error {
		return WriteHTML(w, n, opts)
	}
}

// OutputMode is the permission of rendered files
const OutputMode = 0o644

// FileRenderer writes every render to the same file, replacing the previous one
type FileRenderer struct {
	path  string
	write WriteFunc
}

// NewFileRenderer creates a renderer writing to path
func NewFileRenderer(path string, write WriteFunc) *FileRenderer {
	return &FileRenderer{path: path, write: write}
}

// Path returns the output file
func (r *FileRenderer) Path() string {
	return r.path
}

// Render writes n to a temp file and renames it over the output
func (r *FileRenderer) Render(n *Network) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".crewmap-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := r.write(tmp, n); err != nil {
		tmp.Close()
		return err
	}
	// CreateTemp makes owner-only files
	if err := tmp.Chmod(OutputMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}
