package graphview

import (
	"fmt"
	"html/template"
	"io"
)

// VisNetworkScript is the vis-network bundle loaded by rendered pages
const VisNetworkScript = "https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"

var standaloneTmpl = template.Must(template.New("standalone").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
      * { margin: 0; }
      body { background: #111827; }
      #{{.Network.Container}} { width: 100vw; height: 100vh; }
    </style>
    <script type="text/javascript" src="{{.Script}}"></script>
  </head>
  <body>
    <div id="{{.Network.Container}}"></div>
    <script type="text/javascript">
      const payload = {{.Network}};
      const links = {{.Links}};
      const container = document.getElementById(payload.container);
      const network = new vis.Network(container, {
        nodes: new vis.DataSet(payload.nodes),
        edges: new vis.DataSet(payload.edges),
      }, payload.options);
      network.on("click", function (params) {
        if (params.nodes.length !== 1) return;
        const path = links[params.nodes[0]];
        if (path) window.location.href = {{.LinkBase}} + path;
      });
    </script>
  </body>
</html>
`))

// HTMLOptions controls the standalone page
type HTMLOptions struct {
	Title string
	// LinkBase is prepended to detail paths, e.g. "https://crewmap.example"
	LinkBase string
}

// WriteHTML writes a self-contained vis-network page for n
func WriteHTML(w io.Writer, n *Network, opts HTMLOptions) error {
	if opts.Title == "" {
		opts.Title = "crewmap graph"
	}

	data := struct {
		Title    string
		Script   string
		LinkBase string
		Network  *Network
		Links    map[string]string
	}{
		Title:    opts.Title,
		Script:   VisNetworkScript,
		LinkBase: opts.LinkBase,
		Network:  n,
		Links:    Links(n),
	}

	if err := standaloneTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}
