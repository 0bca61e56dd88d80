package graphview

import "crewmap/internal/domain"

// ContainerID is the DOM element the network is bound to
const ContainerID = "graph-container"

// Node styling shared by every palette entry
const (
	highlightBorder = "#fff"
	fontColor       = "#ffffff"
	fontSize        = 14
	borderWidth     = 2
	edgeWidth       = 2
)

// Palette is the color family for one node type
type Palette struct {
	Background          string
	Border              string
	HighlightBackground string
}

var (
	alliancePalette = Palette{Background: "#8b5cf6", Border: "#a78bfa", HighlightBackground: "#a78bfa"}
	setPalette      = Palette{Background: "#22c55e", Border: "#4ade80", HighlightBackground: "#4ade80"}
	defaultPalette  = Palette{Background: "#3b82f6", Border: "#60a5fa", HighlightBackground: "#60a5fa"}
)

// PaletteFor returns the palette for a node type. Members and unknown types
// share the default blue family.
func PaletteFor(kind domain.NodeKind) Palette {
	switch kind {
	case domain.NodeKindAlliance:
		return alliancePalette
	case domain.NodeKindSet:
		return setPalette
	default:
		return defaultPalette
	}
}

// Network is the input of one vis.Network construction
type Network struct {
	Container string    `json:"container"`
	Nodes     []VisNode `json:"nodes"`
	Edges     []VisEdge `json:"edges"`
	Options   Options   `json:"options"`
}

// VisNode is a node in vis-network's schema
type VisNode struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Size        float64   `json:"size"`
	Color       NodeColor `json:"color"`
	Font        Font      `json:"font"`
	BorderWidth int       `json:"borderWidth"`
}

// NodeColor is vis-network's node color object
type NodeColor struct {
	Background string    `json:"background"`
	Border     string    `json:"border"`
	Highlight  Highlight `json:"highlight"`
}

// Highlight is the selected-node color pair
type Highlight struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// Font is a vis-network label font
type Font struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// VisEdge is an edge in vis-network's schema
type VisEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Color  string `json:"color"`
	Dashes bool   `json:"dashes"`
	Width  int    `json:"width"`
}

// Options is the vis.Network options object
type Options struct {
	Nodes       NodeOptions `json:"nodes"`
	Edges       EdgeOptions `json:"edges"`
	Physics     Physics     `json:"physics"`
	Interaction Interaction `json:"interaction"`
}

// NodeOptions configures node shape and size bounds
type NodeOptions struct {
	Shape   string  `json:"shape"`
	Scaling Scaling `json:"scaling"`
}

// Scaling bounds node sizes
type Scaling struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EdgeOptions configures edge drawing
type EdgeOptions struct {
	Smooth Smooth `json:"smooth"`
}

// Smooth selects the edge curve style
type Smooth struct {
	Type string `json:"type"`
}

// Physics configures the layout simulation
type Physics struct {
	Stabilization Stabilization `json:"stabilization"`
	BarnesHut     BarnesHut     `json:"barnesHut"`
}

// Stabilization configures the initial layout pass
type Stabilization struct {
	Enabled    bool `json:"enabled"`
	Iterations int  `json:"iterations"`
}

// BarnesHut holds the solver constants
type BarnesHut struct {
	GravitationalConstant float64 `json:"gravitationalConstant"`
	CentralGravity        float64 `json:"centralGravity"`
	SpringLength          float64 `json:"springLength"`
	SpringConstant        float64 `json:"springConstant"`
	Damping               float64 `json:"damping"`
}

// Interaction configures hover and pan/zoom behavior
type Interaction struct {
	Hover        bool `json:"hover"`
	TooltipDelay int  `json:"tooltipDelay"`
	ZoomView     bool `json:"zoomView"`
	DragView     bool `json:"dragView"`
}

// DefaultOptions returns the tuned network options
func DefaultOptions() Options {
	return Options{
		Nodes: NodeOptions{
			Shape:   "dot",
			Scaling: Scaling{Min: 10, Max: 30},
		},
		Edges: EdgeOptions{
			Smooth: Smooth{Type: "continuous"},
		},
		Physics: Physics{
			Stabilization: Stabilization{Enabled: true, Iterations: 100},
			BarnesHut: BarnesHut{
				GravitationalConstant: -8000,
				CentralGravity:        0.3,
				SpringLength:          150,
				SpringConstant:        0.04,
				Damping:               0.09,
			},
		},
		Interaction: Interaction{
			Hover:        true,
			TooltipDelay: 100,
			ZoomView:     true,
			DragView:     true,
		},
	}
}

// BuildNetwork maps visible nodes and edges to a new Network
func BuildNetwork(nodes []domain.Node, edges []domain.Edge) *Network {
	net := &Network{
		Container: ContainerID,
		Nodes:     make([]VisNode, 0, len(nodes)),
		Edges:     make([]VisEdge, 0, len(edges)),
		Options:   DefaultOptions(),
	}

	for _, n := range nodes {
		p := PaletteFor(n.Type)
		net.Nodes = append(net.Nodes, VisNode{
			ID:    n.ID,
			Label: n.Label,
			Size:  n.Size,
			Color: NodeColor{
				Background: p.Background,
				Border:     p.Border,
				Highlight: Highlight{
					Background: p.HighlightBackground,
					Border:     highlightBorder,
				},
			},
			Font:        Font{Color: fontColor, Size: fontSize},
			BorderWidth: borderWidth,
		})
	}

	for _, e := range edges {
		net.Edges = append(net.Edges, VisEdge{
			From:   e.From,
			To:     e.To,
			Color:  e.Color.Color,
			Dashes: e.Dashes,
			Width:  edgeWidth,
		})
	}

	return net
}
