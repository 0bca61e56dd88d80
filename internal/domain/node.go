package domain

// NodeKind represents the type of a graph node
type NodeKind string

const (
	NodeKindMember   NodeKind = "member"
	NodeKindSet      NodeKind = "set"
	NodeKindAlliance NodeKind = "alliance"
)

// Node sizes used by the graph builder
const (
	AllianceNodeSize = 30
	SetNodeSize      = 20
	MemberNodeSize   = 10
)

// Known reports whether k is one of the three record kinds
func (k NodeKind) Known() bool {
	switch k {
	case NodeKindMember, NodeKindSet, NodeKindAlliance:
		return true
	}
	return false
}

// Node is a vertex of the relationship graph as served by /api/graph
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeKind `json:"type"`
	Group string   `json:"group,omitempty"`
	Size  float64  `json:"size"`
}

// NewNode creates a node for a record of the given kind
func NewNode(kind NodeKind, id, label string, size float64) Node {
	return Node{
		ID:    NodeRef{Kind: kind, ID: id}.String(),
		Label: label,
		Type:  kind,
		Group: string(kind),
		Size:  size,
	}
}

// Ref parses the node id into a NodeRef
func (n Node) Ref() (NodeRef, error) {
	return ParseNodeRef(n.ID)
}

// Toggles holds the viewer's visibility checkboxes
type Toggles struct {
	ShowMembers   bool `json:"show_members"`
	ShowAlliances bool `json:"show_alliances"`
}

// DefaultToggles returns the initial checkbox state (both checked)
func DefaultToggles() Toggles {
	return Toggles{ShowMembers: true, ShowAlliances: true}
}

// Shows reports whether a node of kind k passes the toggles.
// Only members and alliances are gated; every other kind is always shown.
func (t Toggles) Shows(k NodeKind) bool {
	switch k {
	case NodeKindMember:
		return t.ShowMembers
	case NodeKindAlliance:
		return t.ShowAlliances
	}
	return true
}
