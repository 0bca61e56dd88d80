package handler

import (
	"log"
	"net/http"
	"time"

	"crewmap/internal/auth"
)

// SessionCookie holds the login session token
const SessionCookie = "session"

// AuthHandler implements the password login gate
type AuthHandler struct {
	gate     *auth.Gate
	sessions *auth.SessionManager
	pages    *PageHandler
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(gate *auth.Gate, sessions *auth.SessionManager, pages *PageHandler) *AuthHandler {
	return &AuthHandler{gate: gate, sessions: sessions, pages: pages}
}

// Enabled reports whether pages require a session
func (h *AuthHandler) Enabled() bool {
	return h != nil && h.gate.Enabled() && h.sessions != nil
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, "login.html", http.StatusOK, loginData{})
}

type loginData struct {
	page
	Error string
}

// Login checks the submitted password and starts a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled() {
		http.Redirect(w, r, "/graph", http.StatusFound)
		return
	}

	if !h.gate.Check(r.PostFormValue("password")) {
		h.pages.render(w, "login.html", http.StatusUnauthorized, loginData{Error: "Invalid password"})
		return
	}

	token, expiresAt, err := h.sessions.Issue()
	if err != nil {
		log.Printf("Failed to issue session: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/graph", http.StatusFound)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Require redirects to /login unless the request carries a valid session.
// It passes everything through when the gate is disabled.
func (h *AuthHandler) Require(next http.HandlerFunc) http.HandlerFunc {
	if !h.Enabled() {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || h.sessions.Validate(cookie.Value) != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// RequireAPI rejects requests without a valid session with 401. It guards
// API writes, which must not redirect.
func (h *AuthHandler) RequireAPI(next http.HandlerFunc) http.HandlerFunc {
	if !h.Enabled() {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || h.sessions.Validate(cookie.Value) != nil {
			writeError(w, "Unauthorized", "a login session is required", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
