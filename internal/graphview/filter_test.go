package graphview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewmap/internal/domain"
)

func sampleGraph() ([]domain.Node, []domain.Edge) {
	nodes := []domain.Node{
		{ID: "alliance-1", Label: "West", Type: domain.NodeKindAlliance, Size: 30},
		{ID: "set-1", Label: "Eastside", Type: domain.NodeKindSet, Size: 20},
		{ID: "set-2", Label: "Northside", Type: domain.NodeKindSet, Size: 20},
		{ID: "member-1", Label: "Jay", Type: domain.NodeKindMember, Size: 10},
		{ID: "member-2", Label: "Dre", Type: domain.NodeKindMember, Size: 10},
	}
	edges := []domain.Edge{
		{From: "set-1", To: "alliance-1", Color: domain.EdgeColor{Color: domain.ColorAllianceMember}},
		{From: "set-1", To: "set-2", Color: domain.EdgeColor{Color: domain.ColorEnemy}, Dashes: true},
		{From: "member-1", To: "set-1", Color: domain.EdgeColor{Color: domain.ColorMemberOf}},
		{From: "member-2", To: "alliance-1", Color: domain.EdgeColor{Color: domain.ColorAllianceMember}},
		{From: "member-1", To: "member-2", Color: domain.EdgeColor{Color: domain.ColorAlly}},
	}
	return nodes, edges
}

func allToggles() []domain.Toggles {
	return []domain.Toggles{
		{ShowMembers: true, ShowAlliances: true},
		{ShowMembers: true, ShowAlliances: false},
		{ShowMembers: false, ShowAlliances: true},
		{ShowMembers: false, ShowAlliances: false},
	}
}

func TestComputeVisibleWorkedExample(t *testing.T) {
	nodes := []domain.Node{
		{ID: "member-1", Type: domain.NodeKindMember},
		{ID: "alliance-1", Type: domain.NodeKindAlliance},
	}
	edges := []domain.Edge{{From: "member-1", To: "alliance-1"}}

	visibleNodes, visibleEdges := ComputeVisible(nodes, edges, domain.Toggles{ShowMembers: false, ShowAlliances: true})

	assert.Equal(t, []domain.Node{{ID: "alliance-1", Type: domain.NodeKindAlliance}}, visibleNodes)
	assert.Empty(t, visibleEdges)
}

func TestComputeVisibleEdgesHaveVisibleEndpoints(t *testing.T) {
	nodes, edges := sampleGraph()

	for _, toggles := range allToggles() {
		visibleNodes, visibleEdges := ComputeVisible(nodes, edges, toggles)

		ids := make(map[string]bool)
		for _, n := range visibleNodes {
			ids[n.ID] = true
		}

		var want []domain.Edge
		for _, e := range edges {
			if ids[e.From] && ids[e.To] {
				want = append(want, e)
			}
		}

		if len(want) == 0 {
			assert.Empty(t, visibleEdges, "toggles %+v", toggles)
		} else {
			assert.Equal(t, want, visibleEdges, "toggles %+v", toggles)
		}
	}
}

func TestComputeVisibleMemberToggle(t *testing.T) {
	nodes, edges := sampleGraph()

	visibleNodes, _ := ComputeVisible(nodes, edges, domain.Toggles{ShowMembers: false, ShowAlliances: true})

	for _, n := range visibleNodes {
		assert.NotEqual(t, domain.NodeKindMember, n.Type)
	}
	// everything that is not a member survives
	assert.Len(t, visibleNodes, 3)
}

func TestComputeVisibleSetsAlwaysShown(t *testing.T) {
	nodes, edges := sampleGraph()

	for _, toggles := range allToggles() {
		visibleNodes, _ := ComputeVisible(nodes, edges, toggles)

		var sets []string
		for _, n := range visibleNodes {
			if n.Type == domain.NodeKindSet {
				sets = append(sets, n.ID)
			}
		}
		assert.Equal(t, []string{"set-1", "set-2"}, sets, "toggles %+v", toggles)
	}
}

func TestComputeVisibleUnknownTypesPassThrough(t *testing.T) {
	nodes := []domain.Node{{ID: "vehicle-1", Type: "vehicle"}}

	visibleNodes, _ := ComputeVisible(nodes, nil, domain.Toggles{})

	assert.Len(t, visibleNodes, 1)
}

func TestComputeVisibleIdempotentAndStable(t *testing.T) {
	nodes, edges := sampleGraph()
	toggles := domain.Toggles{ShowMembers: true, ShowAlliances: false}

	n1, e1 := ComputeVisible(nodes, edges, toggles)
	n2, e2 := ComputeVisible(nodes, edges, toggles)

	assert.Equal(t, n1, n2)
	assert.Equal(t, e1, e2)

	order := make([]string, 0, len(n1))
	for _, n := range n1 {
		order = append(order, n.ID)
	}
	assert.Equal(t, []string{"set-1", "set-2", "member-1", "member-2"}, order)
}

func TestComputeVisibleDoesNotMutateInput(t *testing.T) {
	nodes, edges := sampleGraph()
	origNodes := append([]domain.Node(nil), nodes...)
	origEdges := append([]domain.Edge(nil), edges...)

	ComputeVisible(nodes, edges, domain.Toggles{})

	assert.Equal(t, origNodes, nodes)
	assert.Equal(t, origEdges, edges)
}

var togglesNoMembers = domain.Toggles{ShowMembers: false, ShowAlliances: true}
