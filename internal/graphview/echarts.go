package graphview

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteECharts writes n as a go-echarts force graph page.
// Node colors and sizes follow the vis palette. Edges take their source node's color.
func WriteECharts(w io.Writer, n *Network, title string) error {
	if title == "" {
		title = "crewmap graph"
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(echartsGraph(n, title))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render echarts: %w", err)
	}
	return nil
}

func echartsGraph(n *Network, title string) *charts.Graph {
	nodes := make([]opts.GraphNode, 0, len(n.Nodes))
	for _, node := range n.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       node.ID,
			Value:      float32(node.Size),
			SymbolSize: node.Size,
			ItemStyle:  &opts.ItemStyle{Color: node.Color.Background, BorderColor: node.Color.Border},
		})
	}

	links := make([]opts.GraphLink, 0, len(n.Edges))
	for _, edge := range n.Edges {
		links = append(links, opts.GraphLink{
			Source: edge.From,
			Target: edge.To,
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
				Force:     &opts.GraphForce{Repulsion: 400},
			},
		),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: "source",
			Width: edgeWidth,
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return graph
}
