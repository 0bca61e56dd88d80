package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"crewmap/internal/domain"
)

// Importer interface for importing datasets from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Dataset, error)
	Format() string
}

// Exporter interface for exporting datasets to various formats
type Exporter interface {
	Export(ds *domain.Dataset, w io.Writer) error
	Format() string
}

// Codec both imports and exports a format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for "yaml" (or "yml") and "json"
func ForFormat(format string) (Codec, error) {
	switch format {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// FormatForPath picks the format from a file extension
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, err := ForFormat(ext); err != nil {
		return "", fmt.Errorf("cannot infer format of %s: %w", path, err)
	}
	return ext, nil
}

// ContentType returns the HTTP content type for a codec
func ContentType(c Exporter) string {
	if c.Format() == "json" {
		return "application/json"
	}
	return "application/x-yaml"
}
