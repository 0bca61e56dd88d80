package handler

import (
	"net/http"

	"crewmap/internal/auth"
	"crewmap/internal/graphview"
	"crewmap/internal/metrics"
	"crewmap/internal/service"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Service *service.GraphService
	View    *graphview.View
	Events  http.Handler
	Metrics *metrics.Registry

	// Gate and Sessions enable the login gate when both are set and the
	// gate has a password
	Gate     *auth.Gate
	Sessions *auth.SessionManager

	// LinkBase is prepended to detail page redirects
	LinkBase string
}

// NewRouter registers every route and applies the middleware chain
func NewRouter(d Deps) http.Handler {
	graphHandler := NewGraphHandler(d.Service)
	viewHandler := NewViewHandler(d.View, d.LinkBase)
	pageHandler := NewPageHandler(d.Service, d.View)
	authHandler := NewAuthHandler(d.Gate, d.Sessions, pageHandler)
	pageHandler.SetLoginGate(authHandler.Enabled())

	if d.Metrics != nil {
		graphHandler.SetMetrics(d.Metrics)
		viewHandler.SetMetrics(d.Metrics)
	}

	mux := http.NewServeMux()

	// Graph payload consumed by views
	mux.HandleFunc("GET /api/graph", graphHandler.GetGraph)

	// Record endpoints. Writes need a session when the login gate is on.
	mux.HandleFunc("GET /api/counts", graphHandler.Counts)
	mux.HandleFunc("GET /api/alliances", graphHandler.ListAlliances)
	mux.HandleFunc("POST /api/alliances", authHandler.RequireAPI(graphHandler.CreateAlliance))
	mux.HandleFunc("GET /api/alliances/{id}", graphHandler.GetAlliance)
	mux.HandleFunc("PUT /api/alliances/{id}", authHandler.RequireAPI(graphHandler.UpdateAlliance))
	mux.HandleFunc("DELETE /api/alliances/{id}", authHandler.RequireAPI(graphHandler.DeleteAlliance))
	mux.HandleFunc("GET /api/sets", graphHandler.ListSets)
	mux.HandleFunc("POST /api/sets", authHandler.RequireAPI(graphHandler.CreateSet))
	mux.HandleFunc("GET /api/sets/{id}", graphHandler.GetSet)
	mux.HandleFunc("PUT /api/sets/{id}", authHandler.RequireAPI(graphHandler.UpdateSet))
	mux.HandleFunc("DELETE /api/sets/{id}", authHandler.RequireAPI(graphHandler.DeleteSet))
	mux.HandleFunc("GET /api/members", graphHandler.ListMembers)
	mux.HandleFunc("POST /api/members", authHandler.RequireAPI(graphHandler.CreateMember))
	mux.HandleFunc("GET /api/members/{id}", graphHandler.GetMember)
	mux.HandleFunc("PUT /api/members/{id}", authHandler.RequireAPI(graphHandler.UpdateMember))
	mux.HandleFunc("DELETE /api/members/{id}", authHandler.RequireAPI(graphHandler.DeleteMember))

	// Dataset endpoints
	mux.HandleFunc("POST /api/import", authHandler.RequireAPI(graphHandler.Import))
	mux.HandleFunc("GET /api/export", graphHandler.Export)

	// View endpoints
	mux.HandleFunc("GET /api/view", viewHandler.GetState)
	mux.HandleFunc("GET /api/view/network", viewHandler.GetNetwork)
	mux.HandleFunc("PUT /api/view/toggles", authHandler.RequireAPI(viewHandler.SetToggles))

	// Pages
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /dashboard", authHandler.Require(pageHandler.Dashboard))
	mux.HandleFunc("GET /graph", authHandler.Require(pageHandler.Graph))
	mux.HandleFunc("GET /graph/echarts", authHandler.Require(pageHandler.ECharts))
	mux.HandleFunc("GET /nodes/{id}", authHandler.Require(viewHandler.ResolveNode))
	mux.HandleFunc("GET /alliances", authHandler.Require(pageHandler.Alliances))
	mux.HandleFunc("GET /alliances/{id}", authHandler.Require(pageHandler.Alliance))
	mux.HandleFunc("GET /sets", authHandler.Require(pageHandler.Sets))
	mux.HandleFunc("GET /sets/{id}", authHandler.Require(pageHandler.Set))
	mux.HandleFunc("GET /members", authHandler.Require(pageHandler.Members))
	mux.HandleFunc("GET /members/{id}", authHandler.Require(pageHandler.Member))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/graph", http.StatusFound)
	})

	if d.Events != nil {
		mux.Handle("GET /events", d.Events)
	}
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	middleware := []Middleware{Recover, CORS, Logger}
	if d.Metrics != nil {
		middleware = append(middleware, Metrics(d.Metrics))
	}
	return Chain(mux, middleware...)
}
