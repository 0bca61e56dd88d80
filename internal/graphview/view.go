package graphview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"crewmap/internal/domain"
)

// State is the lifecycle state of a View
type State int

const (
	StateUnloaded State = iota
	StateLoaded
)

// String returns the state name
func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "unloaded"
}

// MarshalText encodes the state as its name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Source provides the raw graph
type Source interface {
	Graph(ctx context.Context) (*domain.Graph, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) (*domain.Graph, error)

// Graph calls f
func (f SourceFunc) Graph(ctx context.Context) (*domain.Graph, error) {
	return f(ctx)
}

// Renderer draws a network. Each call replaces whatever the previous call drew.
type Renderer interface {
	Render(n *Network) error
}

// Navigator follows a detail page path
type Navigator interface {
	Navigate(path string)
}

// Observer is notified of View lifecycle events
type Observer interface {
	Loaded(nodes, edges int)
	LoadFailed(err error)
	Rendered(nodes, edges int)
}

// LoadFailure wraps any error raised while fetching or decoding the graph
type LoadFailure struct {
	Err error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("graph load failed: %v", e.Err)
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}

// View owns the graph data, the toggle state and the current network
type View struct {
	mu sync.RWMutex
	// renderMu orders renders so the renderer always ends on the newest
	// toggles; loadMu does the same for fetches
	renderMu sync.Mutex
	loadMu   sync.Mutex

	source    Source
	renderer  Renderer
	navigator Navigator
	observers []Observer

	state   State
	nodes   []domain.Node
	edges   []domain.Edge
	toggles domain.Toggles
	network *Network
}

// NewView creates an unloaded view reading from src
func NewView(src Source) *View {
	return &View{
		source:  src,
		toggles: domain.DefaultToggles(),
	}
}

// SetRenderer sets the renderer invoked on every render
func (v *View) SetRenderer(r Renderer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer = r
}

// SetNavigator sets the navigator used by Click
func (v *View) SetNavigator(n Navigator) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navigator = n
}

// AddObserver registers an observer
func (v *View) AddObserver(o Observer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, o)
}

// Load fetches the graph once. On success the view becomes Loaded and renders.
// On failure the error is logged and the view stays empty and Unloaded.
func (v *View) Load(ctx context.Context) {
	v.loadMu.Lock()
	defer v.loadMu.Unlock()

	if v.State() == StateLoaded {
		return
	}
	v.fetch(ctx)
}

// Reload fetches the graph again and replaces the held data. A failed
// reload is logged and keeps the previous data.
func (v *View) Reload(ctx context.Context) {
	v.loadMu.Lock()
	defer v.loadMu.Unlock()

	v.fetch(ctx)
}

func (v *View) fetch(ctx context.Context) {
	graph, err := v.source.Graph(ctx)
	if err == nil && graph == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		failure := &LoadFailure{Err: err}
		log.Printf("Failed to load graph: %v", failure)
		for _, o := range v.snapshotObservers() {
			o.LoadFailed(failure)
		}
		return
	}

	v.mu.Lock()
	v.nodes = graph.Nodes
	v.edges = graph.Edges
	v.state = StateLoaded
	v.mu.Unlock()

	log.Printf("Graph loaded: %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))
	for _, o := range v.snapshotObservers() {
		o.Loaded(len(graph.Nodes), len(graph.Edges))
	}

	v.Render()
}

// State returns the current lifecycle state
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Data returns the loaded graph. Both slices are empty while Unloaded.
func (v *View) Data() *domain.Graph {
	v.mu.RLock()
	defer v.mu.RUnlock()

	g := domain.NewGraph()
	g.Nodes = append(g.Nodes, v.nodes...)
	g.Edges = append(g.Edges, v.edges...)
	return g
}

// Toggles returns the current toggle state
func (v *View) Toggles() domain.Toggles {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.toggles
}

// SetToggles stores the toggles and re-renders when Loaded
func (v *View) SetToggles(t domain.Toggles) {
	v.mu.Lock()
	v.toggles = t
	loaded := v.state == StateLoaded
	v.mu.Unlock()

	if loaded {
		v.Render()
	}
}

// Render rebuilds the network from the held data and current toggles.
// It does nothing while Unloaded. Renders run one at a time and each reads
// the toggles when it starts, so the last one to finish draws the latest state.
func (v *View) Render() {
	v.renderMu.Lock()
	defer v.renderMu.Unlock()

	v.mu.Lock()
	if v.state != StateLoaded {
		v.mu.Unlock()
		return
	}

	nodes, edges := ComputeVisible(v.nodes, v.edges, v.toggles)
	net := BuildNetwork(nodes, edges)
	v.network = net

	renderer := v.renderer
	observers := append([]Observer(nil), v.observers...)
	v.mu.Unlock()

	if renderer != nil {
		if err := renderer.Render(net); err != nil {
			log.Printf("Failed to render graph: %v", err)
			return
		}
	}
	for _, o := range observers {
		o.Rendered(len(net.Nodes), len(net.Edges))
	}
}

// Network returns the most recently rendered network, or nil while Unloaded
func (v *View) Network() *Network {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.network
}

// Snapshot builds a network for the given toggles without touching the
// view's own toggles or current network
func (v *View) Snapshot(t domain.Toggles) (*Network, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.state != StateLoaded {
		return nil, false
	}
	nodes, edges := ComputeVisible(v.nodes, v.edges, t)
	return BuildNetwork(nodes, edges), true
}

// Resolve maps a node id to its detail page path
func Resolve(nodeID string) (string, bool) {
	ref, err := domain.ParseNodeRef(nodeID)
	if err != nil {
		return "", false
	}
	return ref.DetailPath()
}

// Links maps each node of n with a detail page to that page's path. Nodes
// of unknown kinds are left out, so clicking them goes nowhere.
func Links(n *Network) map[string]string {
	links := make(map[string]string, len(n.Nodes))
	for _, node := range n.Nodes {
		if path, ok := Resolve(node.ID); ok {
			links[node.ID] = path
		}
	}
	return links
}

// Click handles a click on the network. Only single-node clicks on a known
// kind navigate; everything else is ignored.
func (v *View) Click(nodeIDs []string) bool {
	if len(nodeIDs) != 1 {
		return false
	}

	path, ok := Resolve(nodeIDs[0])
	if !ok {
		return false
	}

	v.mu.RLock()
	nav := v.navigator
	v.mu.RUnlock()

	if nav != nil {
		nav.Navigate(path)
	}
	return true
}

func (v *View) snapshotObservers() []Observer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Observer(nil), v.observers...)
}
