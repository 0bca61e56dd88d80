package graphview

import "crewmap/internal/domain"

// ComputeVisible returns the nodes that pass the toggles and the edges whose
// endpoints are both visible. Input order is preserved.
func ComputeVisible(nodes []domain.Node, edges []domain.Edge, toggles domain.Toggles) ([]domain.Node, []domain.Edge) {
	visibleNodes := make([]domain.Node, 0, len(nodes))
	visibleIDs := make(map[string]struct{}, len(nodes))

	for _, n := range nodes {
		if !toggles.Shows(n.Type) {
			continue
		}
		visibleNodes = append(visibleNodes, n)
		visibleIDs[n.ID] = struct{}{}
	}

	visibleEdges := make([]domain.Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := visibleIDs[e.From]; !ok {
			continue
		}
		if _, ok := visibleIDs[e.To]; !ok {
			continue
		}
		visibleEdges = append(visibleEdges, e)
	}

	return visibleNodes, visibleEdges
}
