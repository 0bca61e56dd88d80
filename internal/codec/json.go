package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"crewmap/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a dataset from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	ds := domain.NewDataset()
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(ds); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return ds, nil
}

// Export exports a dataset to JSON
func (c *JSONCodec) Export(ds *domain.Dataset, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ds); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
