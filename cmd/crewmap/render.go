package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"crewmap/internal/domain"
	"crewmap/internal/graphview"
	"crewmap/internal/ui"
)

type renderOptions struct {
	upstream  string
	input     string
	output    string
	format    string
	linkBase  string
	title     string
	members   bool
	alliances bool
}

func renderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the graph to a standalone HTML page",
		Long: `Load the graph once and write a standalone page.

The graph comes from a running server (--upstream) or from a saved
/api/graph response (--input). Members and alliances can be hidden the
same way the viewer's checkboxes hide them.

  crewmap render --upstream http://localhost:3000 -o graph.html
  crewmap render --input graph.json --members=false --format echarts -o graph.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.upstream, "upstream", "", "Base URL of the service providing /api/graph")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Read a saved /api/graph JSON document instead")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "graph.html", "Output file")
	cmd.Flags().StringVar(&opts.format, "format", "vis", "Page format: vis or echarts")
	cmd.Flags().StringVar(&opts.linkBase, "link-base", "", "Prefix for detail page links (defaults to --upstream)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title")
	cmd.Flags().BoolVar(&opts.members, "members", true, "Show member nodes")
	cmd.Flags().BoolVar(&opts.alliances, "alliances", true, "Show alliance nodes")
	cmd.MarkFlagsMutuallyExclusive("upstream", "input")
	cmd.MarkFlagsOneRequired("upstream", "input")

	return cmd
}

// loadResult records the outcome of a one-shot load
type loadResult struct {
	err error
}

func (r *loadResult) Loaded(nodes, edges int) {}
func (r *loadResult) LoadFailed(err error) { r.err = err }
func (r *loadResult) Rendered(nodes, edges int) {}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	format, err := graphview.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var src graphview.Source
	linkBase := opts.linkBase
	if opts.upstream != "" {
		src = graphview.NewHTTPSource(opts.upstream, nil)
		if linkBase == "" {
			linkBase = opts.upstream
		}
	} else {
		src = graphview.NewFileSource(opts.input)
	}

	result := &loadResult{}
	view := graphview.NewView(src)
	view.AddObserver(result)
	view.SetToggles(domain.Toggles{ShowMembers: opts.members, ShowAlliances: opts.alliances})

	view.Load(cmd.Context())
	if view.State() != graphview.StateLoaded {
		if result.err != nil {
			return result.err
		}
		return errors.New("graph did not load")
	}

	net := view.Network()
	renderer := graphview.NewFileRenderer(opts.output, graphview.WriterFor(format, graphview.HTMLOptions{
		Title:    opts.title,
		LinkBase: linkBase,
	}))
	if err := renderer.Render(net); err != nil {
		return err
	}

	ui.Good.Fprintf(cmd.OutOrStdout(), "%s Rendered %d nodes, %d edges to %s\n",
		ui.StatusIcon(true), len(net.Nodes), len(net.Edges), renderer.Path())
	if !opts.members || !opts.alliances {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Subtle.Sprintf("  members: %t, alliances: %t", opts.members, opts.alliances))
	}
	return nil
}
