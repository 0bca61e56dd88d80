package domain

// EdgeType represents the relationship an edge encodes
type EdgeType string

const (
	EdgeTypeAllianceMember EdgeType = "alliance_member"
	EdgeTypeAlly           EdgeType = "ally"
	EdgeTypeEnemy          EdgeType = "enemy"
	EdgeTypeMemberOf       EdgeType = "member_of"
)

// Edge colors used by the graph builder
const (
	ColorAllianceMember = "#3b82f6"
	ColorAlly           = "#22c55e"
	ColorEnemy          = "#ef4444"
	ColorMemberOf       = "#6b7280"
)

// EdgeColor wraps the edge color the way vis-network expects it
type EdgeColor struct {
	Color string `json:"color"`
}

// Edge connects two nodes by id
type Edge struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Type   EdgeType  `json:"type,omitempty"`
	Color  EdgeColor `json:"color"`
	Dashes bool      `json:"dashes,omitempty"`
}

// NewEdge creates an edge between two refs with the color of its type.
// Enemy edges are dashed.
func NewEdge(from, to NodeRef, edgeType EdgeType) Edge {
	return Edge{
		From:   from.String(),
		To:     to.String(),
		Type:   edgeType,
		Color:  EdgeColor{Color: edgeType.Color()},
		Dashes: edgeType == EdgeTypeEnemy,
	}
}

// Color returns the display color for the edge type
func (t EdgeType) Color() string {
	switch t {
	case EdgeTypeAlly:
		return ColorAlly
	case EdgeTypeEnemy:
		return ColorEnemy
	case EdgeTypeMemberOf:
		return ColorMemberOf
	default:
		return ColorAllianceMember
	}
}
