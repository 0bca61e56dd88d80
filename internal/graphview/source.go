package graphview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"crewmap/internal/domain"
)

// GraphPath is the endpoint serving the raw graph
const GraphPath = "/api/graph"

// HTTPSource fetches the graph from an HTTP endpoint
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for baseURL + /api/graph.
// The client has no timeout; only ctx cancels a pending fetch.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{
		url:    strings.TrimRight(baseURL, "/") + GraphPath,
		client: client,
	}
}

// URL returns the endpoint the source reads from
func (s *HTTPSource) URL() string {
	return s.url
}

// Graph issues GET /api/graph and decodes {nodes, edges}
func (s *HTTPSource) Graph(ctx context.Context) (*domain.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return DecodeGraph(resp.Body)
}

// FileSource reads a graph JSON document from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source for a saved /api/graph response
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Graph reads and decodes the file
func (s *FileSource) Graph(ctx context.Context) (*domain.Graph, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	return DecodeGraph(f)
}

// DecodeGraph decodes a {nodes, edges} document. Missing arrays decode as empty.
func DecodeGraph(r io.Reader) (*domain.Graph, error) {
	graph := domain.NewGraph()
	if err := json.NewDecoder(r).Decode(graph); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	if graph.Nodes == nil {
		graph.Nodes = []domain.Node{}
	}
	if graph.Edges == nil {
		graph.Edges = []domain.Edge{}
	}
	return graph, nil
}
