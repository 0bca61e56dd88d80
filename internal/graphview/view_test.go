package graphview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewmap/internal/domain"
)

type recordingRenderer struct {
	networks []*Network
	err      error
}

func (r *recordingRenderer) Render(n *Network) error {
	r.networks = append(r.networks, n)
	return r.err
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

type recordingObserver struct {
	loaded   int
	failures []error
	renders  int
}

func (o *recordingObserver) Loaded(nodes, edges int) { o.loaded++ }
func (o *recordingObserver) LoadFailed(err error)    { o.failures = append(o.failures, err) }
func (o *recordingObserver) Rendered(nodes, edges int) {
	o.renders++
}

func staticSource(nodes []domain.Node, edges []domain.Edge) Source {
	return SourceFunc(func(ctx context.Context) (*domain.Graph, error) {
		return &domain.Graph{Nodes: nodes, Edges: edges}, nil
	})
}

func TestViewLoadFailure(t *testing.T) {
	boom := errors.New("connection refused")
	view := NewView(SourceFunc(func(ctx context.Context) (*domain.Graph, error) {
		return nil, boom
	}))
	renderer := &recordingRenderer{}
	observer := &recordingObserver{}
	view.SetRenderer(renderer)
	view.AddObserver(observer)

	assert.NotPanics(t, func() { view.Load(context.Background()) })

	assert.Equal(t, StateUnloaded, view.State())
	assert.Empty(t, view.Data().Nodes)
	assert.Empty(t, view.Data().Edges)
	assert.Empty(t, renderer.networks)
	assert.Nil(t, view.Network())

	require.Len(t, observer.failures, 1)
	var failure *LoadFailure
	require.ErrorAs(t, observer.failures[0], &failure)
	assert.ErrorIs(t, failure, boom)

	// toggles after a failed load still never render
	view.SetToggles(domain.Toggles{ShowMembers: false, ShowAlliances: true})
	assert.Empty(t, renderer.networks)
}

func TestViewLoadRendersOnce(t *testing.T) {
	nodes, edges := sampleGraph()
	view := NewView(staticSource(nodes, edges))
	renderer := &recordingRenderer{}
	observer := &recordingObserver{}
	view.SetRenderer(renderer)
	view.AddObserver(observer)

	view.Load(context.Background())

	assert.Equal(t, StateLoaded, view.State())
	require.Len(t, renderer.networks, 1)
	assert.Len(t, renderer.networks[0].Nodes, len(nodes))
	assert.Equal(t, 1, observer.loaded)
	assert.Equal(t, 1, observer.renders)

	// a second Load does not refetch or render again
	view.Load(context.Background())
	assert.Len(t, renderer.networks, 1)
}

func TestViewTogglesRebuildNetwork(t *testing.T) {
	nodes, edges := sampleGraph()
	view := NewView(staticSource(nodes, edges))
	renderer := &recordingRenderer{}
	view.SetRenderer(renderer)

	view.SetToggles(domain.Toggles{ShowMembers: false, ShowAlliances: true})
	assert.Empty(t, renderer.networks, "no render before load")

	view.Load(context.Background())
	require.Len(t, renderer.networks, 1)
	first := view.Network()
	assert.Len(t, first.Nodes, 3)

	view.SetToggles(domain.Toggles{ShowMembers: true, ShowAlliances: false})
	require.Len(t, renderer.networks, 2)
	second := view.Network()

	assert.NotSame(t, first, second)
	assert.Len(t, second.Nodes, 4)
	for _, e := range second.Edges {
		assert.NotEqual(t, "alliance-1", e.To)
	}
}

func TestViewRenderErrorIsLogged(t *testing.T) {
	nodes, edges := sampleGraph()
	view := NewView(staticSource(nodes, edges))
	observer := &recordingObserver{}
	view.SetRenderer(&recordingRenderer{err: errors.New("disk full")})
	view.AddObserver(observer)

	view.Load(context.Background())

	assert.Equal(t, StateLoaded, view.State())
	assert.Equal(t, 0, observer.renders)
}

func TestViewSnapshot(t *testing.T) {
	nodes, edges := sampleGraph()
	view := NewView(staticSource(nodes, edges))

	_, ok := view.Snapshot(domain.DefaultToggles())
	assert.False(t, ok)

	view.Load(context.Background())
	net, ok := view.Snapshot(domain.Toggles{})
	require.True(t, ok)
	assert.Len(t, net.Nodes, 2)
	assert.Len(t, net.Edges, 1)

	// the view's own toggles are untouched
	assert.Equal(t, domain.DefaultToggles(), view.Toggles())
	assert.Len(t, view.Network().Nodes, len(nodes))
}

func TestViewClick(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		wantPath string
	}{
		{"set", []string{"set-42"}, "/sets/42"},
		{"member", []string{"member-7"}, "/members/7"},
		{"alliance", []string{"alliance-3"}, "/alliances/3"},
		{"uuid backing id", []string{"set-6f1c9e2d-1a4e"}, "/sets/6f1c9e2d-1a4e"},
		{"unknown prefix", []string{"foo-9"}, ""},
		{"no prefix", []string{"42"}, ""},
		{"background click", nil, ""},
		{"multi select", []string{"set-1", "set-2"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(staticSource(nil, nil))
			nav := &recordingNavigator{}
			view.SetNavigator(nav)

			navigated := view.Click(tt.ids)

			if tt.wantPath == "" {
				assert.False(t, navigated)
				assert.Empty(t, nav.paths)
				return
			}
			assert.True(t, navigated)
			assert.Equal(t, []string{tt.wantPath}, nav.paths)
		})
	}
}

func TestViewReload(t *testing.T) {
	nodes, edges := sampleGraph()
	var (
		mu      sync.Mutex
		current = &domain.Graph{Nodes: nodes, Edges: edges}
		fail    error
	)
	view := NewView(SourceFunc(func(ctx context.Context) (*domain.Graph, error) {
		mu.Lock()
		defer mu.Unlock()
		return current, fail
	}))
	renderer := &recordingRenderer{}
	observer := &recordingObserver{}
	view.SetRenderer(renderer)
	view.AddObserver(observer)

	view.Load(context.Background())
	require.Len(t, view.Network().Nodes, 5)

	mu.Lock()
	current = &domain.Graph{Nodes: nodes[:2], Edges: edges[:1]}
	mu.Unlock()

	// Load keeps the data it already holds
	view.Load(context.Background())
	assert.Len(t, view.Network().Nodes, 5)

	view.Reload(context.Background())
	assert.Equal(t, StateLoaded, view.State())
	assert.Len(t, view.Data().Nodes, 2)
	assert.Len(t, view.Network().Nodes, 2)
	assert.Len(t, renderer.networks, 2)
	assert.Equal(t, 2, observer.loaded)

	t.Run("failed reload keeps data", func(t *testing.T) {
		mu.Lock()
		fail = errors.New("timeout")
		mu.Unlock()

		view.Reload(context.Background())
		assert.Equal(t, StateLoaded, view.State())
		assert.Len(t, view.Network().Nodes, 2)
		assert.Len(t, observer.failures, 1)
	})
}

// gatedRenderer blocks the first render after arm until release is called
type gatedRenderer struct {
	mu      sync.Mutex
	gate    chan struct{}
	entered chan struct{}
	last    int
}

// arm returns the release function and a channel closed once a render is held
func (r *gatedRenderer) arm() (release func(), entered <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gate := make(chan struct{})
	r.gate = gate
	r.entered = make(chan struct{})
	return func() { close(gate) }, r.entered
}

func (r *gatedRenderer) Render(n *Network) error {
	r.mu.Lock()
	gate, entered := r.gate, r.entered
	r.gate = nil
	r.mu.Unlock()

	if gate != nil {
		close(entered)
		<-gate
	}

	r.mu.Lock()
	r.last = len(n.Nodes)
	r.mu.Unlock()
	return nil
}

func (r *gatedRenderer) lastNodes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func TestViewLatestRenderWins(t *testing.T) {
	nodes, edges := sampleGraph()
	view := NewView(staticSource(nodes, edges))
	renderer := &gatedRenderer{}
	view.SetRenderer(renderer)
	view.Load(context.Background())
	require.Equal(t, 5, renderer.lastNodes())

	release, entered := renderer.arm()
	older := domain.Toggles{ShowMembers: true, ShowAlliances: false}
	newer := domain.Toggles{ShowMembers: false, ShowAlliances: true}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		view.SetToggles(older)
	}()
	<-entered

	go func() {
		defer wg.Done()
		view.SetToggles(newer)
	}()
	require.Eventually(t, func() bool { return view.Toggles() == newer }, time.Second, time.Millisecond)

	release()
	wg.Wait()

	// alliance-1, set-1 and set-2
	assert.Equal(t, 3, renderer.lastNodes())
	assert.Len(t, view.Network().Nodes, 3)
}

func TestLinks(t *testing.T) {
	nodes, edges := sampleGraph()
	nodes = append(nodes, domain.Node{ID: "foo-9", Label: "Other", Type: "foo", Size: 10})

	links := Links(BuildNetwork(nodes, edges))

	assert.Equal(t, "/alliances/1", links["alliance-1"])
	assert.Equal(t, "/sets/2", links["set-2"])
	assert.Equal(t, "/members/1", links["member-1"])
	assert.NotContains(t, links, "foo-9")
	assert.Len(t, links, 5)
}
