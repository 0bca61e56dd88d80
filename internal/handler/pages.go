package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"crewmap/internal/domain"
	"crewmap/internal/graphview"
	"crewmap/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = parsePages("graph.html", "alliance.html", "set.html", "member.html", "records.html", "dashboard.html", "login.html", "notfound.html")

func parsePages(names ...string) map[string]*template.Template {
	funcs := template.FuncMap{"join": strings.Join}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return pages
}

// page carries the fields the layout needs
type page struct {
	LoggedIn bool
}

type graphPage struct {
	page
	Container string
	Script    string
	Toggles   domain.Toggles
}

type alliancePage struct {
	page
	*service.AllianceDetail
}

type setPage struct {
	page
	*service.SetDetail
}

type memberPage struct {
	page
	*service.MemberDetail
}

// recordRow is one line of a record list page
type recordRow struct {
	Href   string
	Name   string
	Status string
	Detail string
}

type recordsPage struct {
	page
	Title  string
	Action string
	Query  string
	Rows   []recordRow
}

type dashboardPage struct {
	page
	Counts *domain.RecordCounts
	View   graphview.State
	Nodes  int
	Edges  int
}

type notFoundPage struct {
	page
	Message string
}

// PageHandler renders the HTML pages
type PageHandler struct {
	svc      *service.GraphService
	view     *graphview.View
	loggedIn bool
}

// NewPageHandler creates a page handler
func NewPageHandler(svc *service.GraphService, view *graphview.View) *PageHandler {
	return &PageHandler{svc: svc, view: view}
}

// SetLoginGate marks pages as served behind the login gate so the layout
// offers a logout button
func (h *PageHandler) SetLoginGate(enabled bool) {
	h.loggedIn = enabled
}

// Graph renders the interactive graph page
func (h *PageHandler) Graph(w http.ResponseWriter, r *http.Request) {
	h.render(w, "graph.html", http.StatusOK, graphPage{
		page:      page{LoggedIn: h.loggedIn},
		Container: graphview.ContainerID,
		Script:    graphview.VisNetworkScript,
		Toggles:   h.view.Toggles(),
	})
}

// ECharts renders the graph through go-echarts for the requested toggles
func (h *PageHandler) ECharts(w http.ResponseWriter, r *http.Request) {
	toggles, err := parseToggles(r, h.view.Toggles())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	net, ok := h.view.Snapshot(toggles)
	if !ok {
		http.Error(w, "graph not loaded yet", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := graphview.WriteECharts(&buf, net, "crewmap"); err != nil {
		log.Printf("Failed to render echarts page: %v", err)
		http.Error(w, "Failed to render graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Alliance renders an alliance detail page
func (h *PageHandler) Alliance(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetAlliance(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderLookupError(w, err)
		return
	}
	h.render(w, "alliance.html", http.StatusOK, alliancePage{page{h.loggedIn}, detail})
}

// Set renders a set detail page
func (h *PageHandler) Set(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetSet(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderLookupError(w, err)
		return
	}
	h.render(w, "set.html", http.StatusOK, setPage{page{h.loggedIn}, detail})
}

// Member renders a member detail page
func (h *PageHandler) Member(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderLookupError(w, err)
		return
	}
	h.render(w, "member.html", http.StatusOK, memberPage{page{h.loggedIn}, detail})
}

// Dashboard renders record counts and the graph view state
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.CountRecords(r.Context())
	if err != nil {
		log.Printf("Failed to count records: %v", err)
		http.Error(w, "Failed to count records", http.StatusInternalServerError)
		return
	}

	data := h.view.Data()
	h.render(w, "dashboard.html", http.StatusOK, dashboardPage{
		page:   page{h.loggedIn},
		Counts: counts,
		View:   h.view.State(),
		Nodes:  len(data.Nodes),
		Edges:  len(data.Edges),
	})
}

// Alliances renders the alliance list, filtered by ?search=
func (h *PageHandler) Alliances(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	alliances, err := h.svc.SearchAlliances(r.Context(), query, 0)
	if err != nil {
		h.renderSearchError(w, err)
		return
	}

	rows := make([]recordRow, 0, len(alliances))
	for _, a := range alliances {
		rows = append(rows, recordRow{Href: "/alliances/" + a.ID, Name: a.Name, Status: string(a.Status), Detail: a.Bio})
	}
	h.render(w, "records.html", http.StatusOK, recordsPage{page{h.loggedIn}, "Alliances", "/alliances", query, rows})
}

// Sets renders the set list, filtered by ?search=
func (h *PageHandler) Sets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	sets, err := h.svc.SearchSets(r.Context(), query, 0)
	if err != nil {
		h.renderSearchError(w, err)
		return
	}

	rows := make([]recordRow, 0, len(sets))
	for _, set := range sets {
		rows = append(rows, recordRow{Href: "/sets/" + set.ID, Name: set.PrimaryName, Status: string(set.Status), Detail: set.Territory})
	}
	h.render(w, "records.html", http.StatusOK, recordsPage{page{h.loggedIn}, "Sets", "/sets", query, rows})
}

// Members renders the member list, filtered by ?search=
func (h *PageHandler) Members(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	members, err := h.svc.SearchMembers(r.Context(), query, 0)
	if err != nil {
		h.renderSearchError(w, err)
		return
	}

	rows := make([]recordRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, recordRow{Href: "/members/" + m.ID, Name: m.DisplayName(), Status: string(m.Status), Detail: string(m.Affiliation)})
	}
	h.render(w, "records.html", http.StatusOK, recordsPage{page{h.loggedIn}, "Members", "/members", query, rows})
}

func (h *PageHandler) renderSearchError(w http.ResponseWriter, err error) {
	log.Printf("Failed to search records: %v", err)
	http.Error(w, "Failed to search records", http.StatusInternalServerError)
}

func (h *PageHandler) renderLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.render(w, "notfound.html", http.StatusNotFound, notFoundPage{page{h.loggedIn}, err.Error()})
		return
	}
	log.Printf("Failed to load detail page: %v", err)
	http.Error(w, "Failed to load record", http.StatusInternalServerError)
}

// render executes into a buffer so template errors still produce a clean 500
func (h *PageHandler) render(w http.ResponseWriter, name string, status int, data any) {
	tmpl, ok := pageTemplates[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
