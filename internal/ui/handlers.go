package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/cache"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/internal/pricing"
	"github.com/me/insadmin/internal/store"
	"github.com/me/insadmin/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	store     store.Store
	sessions  *SessionManager
	client    *apiclient.Client
	cache     *cache.Cache
	labeler   *paging.Labeler
	defaults  pricing.Defaults
	logger    *slog.Logger
	startTime time.Time
	secure    bool // Use secure cookies (HTTPS)
}

// Config holds UI configuration.
type Config struct {
	Secure     bool // Use secure cookies for HTTPS
	SessionTTL time.Duration
	CacheTTL   time.Duration
	Locale     string
}

// New creates a new UI handler.
func New(st store.Store, client *apiclient.Client, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		store:     st,
		sessions:  NewSessionManager(st, cfg.SessionTTL),
		client:    client,
		cache:     cache.New(cfg.CacheTTL),
		labeler:   paging.NewLabeler(cfg.Locale),
		defaults:  pricing.BuiltinDefaults(),
		logger:    logger.With("component", "ui"),
		startTime: time.Now(),
		secure:    cfg.Secure,
	}
}

// Sessions returns the session manager.
func (ui *UI) Sessions() *SessionManager {
	return ui.sessions
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to the role's home.
	if sess, _ := ui.sessions.GetSessionFromRequest(r); sess != nil {
		http.Redirect(w, r, sess.HomePath(), http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Sign in - insadmin",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+request", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		http.Redirect(w, r, "/login?error=Username+and+password+required", http.StatusSeeOther)
		return
	}

	res, err := ui.client.Login(r.Context(), username, password)
	if err != nil {
		ui.logger.Warn("login failed", "username", username, "error", err)
		msg := "Invalid credentials"
		var apiErr *model.APIError
		switch {
		case errors.Is(err, model.ErrUnavailableSentinel):
			msg = "The remote service is unavailable, try again shortly"
		case errors.As(err, &apiErr) && apiErr.Code == model.ErrUnauthorized && apiErr.Message != "":
			msg = apiErr.Message
		}
		redirectWith(w, r, "/login", "error", msg)
		return
	}

	sess, err := ui.sessions.CreateSession(r.Context(), res.User, res.Permissions, res.Token, res.TokenExp)
	if err != nil {
		ui.logger.Error("create session failed", "error", err)
		http.Redirect(w, r, "/login?error=Session+creation+failed", http.StatusSeeOther)
		return
	}

	SetSessionCookie(w, sess, ui.secure)

	ui.logger.Info("user logged in", "username", sess.Username, "role", string(sess.Role), "session", sess.ID)
	http.Redirect(w, r, sess.HomePath(), http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to login.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
		ui.cache.Invalidate(sess.Token, "")
		ui.logger.Info("user logged out", "username", sess.Username, "session", sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleHome sends the user to the landing page of their role.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	http.Redirect(w, r, sess.HomePath(), http.StatusSeeOther)
}

// HandleEmployeeNotice tells center employees that this console is not
// theirs.
func (ui *UI) HandleEmployeeNotice(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess.IsAdmin() || sess.IsAssistant() {
		http.Redirect(w, r, sess.HomePath(), http.StatusSeeOther)
		return
	}
	ui.render(w, "employee", map[string]any{
		"Title":   "Employee area - insadmin",
		"Session": sess,
	})
}

// --- Helper Methods ---

// redirectWith redirects to path with a single flash parameter.
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, msg string) {
	http.Redirect(w, r, path+"?"+url.Values{key: {msg}}.Encode(), http.StatusSeeOther)
}

// backTo redirects to path with a success or error flash depending on err.
func (ui *UI) backTo(w http.ResponseWriter, r *http.Request, path, okMsg string, err error) {
	if err == nil {
		redirectWith(w, r, path, "msg", okMsg)
		return
	}
	if ui.expired(w, r, err) {
		return
	}
	ui.logger.Warn("mutation failed", "path", r.URL.Path, "error", err)
	redirectWith(w, r, path, "error", model.ValidationMessage(err))
}

// expired handles a remote 401: the session is deleted and the user sent
// back to the login page. It reports whether it wrote a response.
func (ui *UI) expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, model.ErrUnauthorizedSentinel) {
		return false
	}
	if sess := SessionFromContext(r.Context()); sess != nil {
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
		ui.cache.Invalidate(sess.Token, "")
		ui.logger.Info("remote rejected token, session closed", "username", sess.Username)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login?error=Your+session+has+expired", http.StatusSeeOther)
	return true
}

// remoteError renders a failed remote call on the error page.
func (ui *UI) remoteError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if ui.expired(w, r, err) {
		return
	}
	switch {
	case errors.Is(err, model.ErrForbiddenSentinel):
		ui.renderForbidden(w, r, "The remote service denied this request.")
	case errors.Is(err, model.ErrNotFoundSentinel):
		ui.renderNotFound(w, r, message)
	default:
		ui.renderError(w, r, message, err)
	}
}

// flash reads the msg and error query parameters of a redirect.
func flash(r *http.Request, data map[string]any) map[string]any {
	q := r.URL.Query()
	if v := q.Get("msg"); v != "" {
		data["Flash"] = v
	}
	if v := q.Get("error"); v != "" {
		data["Error"] = v
	}
	return data
}

// page builds the common template data of an authenticated page.
func (ui *UI) page(r *http.Request, title string) map[string]any {
	return flash(r, map[string]any{
		"Title":   title + " - insadmin",
		"Session": SessionFromContext(r.Context()),
		"Path":    r.URL.Path,
	})
}

// dateRange reads the from/to filter. An inverted range is swapped.
func dateRange(r *http.Request) model.DateRange {
	q := r.URL.Query()
	d := model.DateRange{From: strings.TrimSpace(q.Get("from")), To: strings.TrimSpace(q.Get("to"))}
	if !d.Valid() && d.From > d.To {
		d.From, d.To = d.To, d.From
	}
	return d
}

func (ui *UI) pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func (ui *UI) render(w http.ResponseWriter, template string, data map[string]any) {
	ui.renderStatus(w, http.StatusOK, template, data)
}

func (ui *UI) renderStatus(w http.ResponseWriter, status int, template string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, r *http.Request, message string, err error) {
	ui.logger.Error(message, "error", err)
	status := http.StatusInternalServerError
	detail := ""
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Message
		if apiErr.Code == model.ErrUpstream || apiErr.Code == model.ErrUnavailable {
			status = http.StatusBadGateway
		}
	}
	data := map[string]any{
		"Title":   "Error - insadmin",
		"Session": SessionFromContext(r.Context()),
		"Message": message,
		"Detail":  detail,
	}
	ui.renderStatus(w, status, "error", data)
}

func (ui *UI) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	data := map[string]any{
		"Title":   "Not Found - insadmin",
		"Session": SessionFromContext(r.Context()),
		"Message": message,
	}
	ui.renderStatus(w, http.StatusNotFound, "error", data)
}

func (ui *UI) renderForbidden(w http.ResponseWriter, r *http.Request, message string) {
	data := map[string]any{
		"Title":   "Forbidden - insadmin",
		"Session": SessionFromContext(r.Context()),
		"Message": message,
	}
	ui.renderStatus(w, http.StatusForbidden, "error", data)
}
