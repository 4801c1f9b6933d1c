package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/store"
	"github.com/me/insadmin/pkg/model"
)

type testEnv struct {
	ui     *UI
	store  *store.SQLiteStore
	router http.Handler
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestEnv wires the UI to a fake remote API served by remote.
func newTestEnv(t *testing.T, remote http.HandlerFunc) *testEnv {
	t.Helper()
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	st := setupTestStore(t)
	t.Cleanup(func() { st.Close() })

	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, testLogger())
	ui := New(st, client, testLogger(), Config{CacheTTL: time.Minute, Locale: "en"})

	r := chi.NewRouter()
	ui.RegisterRoutes(r)
	return &testEnv{ui: ui, store: st, router: r}
}

// signIn stores a session directly and returns its cookie.
func (e *testEnv) signIn(t *testing.T, role model.UserRole, token string, perms ...model.Permission) *http.Cookie {
	t.Helper()
	user := model.User{ID: "u-" + string(role), Username: string(role), FullName: "Test " + string(role), Role: role}
	sess, err := e.ui.sessions.CreateSession(context.Background(), user, model.NewPermissionSet(perms...), token, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

func (e *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func noRemote(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote call %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func TestLoginPost_RedirectsByRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"admin", "/admin"},
		{"assistant_admin", "/assistant"},
		{"employee", "/employee"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/login" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				writeJSON(w, http.StatusOK, map[string]any{
					"success": true,
					"token":   "opaque-token",
					"user":    map[string]any{"id": "u1", "username": "sam", "role": tt.role, "permissions": []string{"view_finance"}},
				})
			})

			w := env.do(postForm("/login", url.Values{"username": {"sam"}, "password": {"pw"}}), nil)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}

			var cookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == SessionCookieName {
					cookie = c
				}
			}
			if cookie == nil {
				t.Fatal("expected session cookie")
			}
			sess, err := env.ui.sessions.GetSession(context.Background(), cookie.Value)
			if err != nil || sess == nil {
				t.Fatalf("session not stored: %v", err)
			}
			if sess.Token != "opaque-token" || sess.Username != "sam" {
				t.Errorf("session = %+v", sess)
			}
		})
	}
}

func TestLoginPost_Rejected(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Wrong password"})
	})

	w := env.do(postForm("/login", url.Values{"username": {"sam"}, "password": {"bad"}}), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if loc.Path != "/login" || loc.Query().Get("error") != "Wrong password" {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
	if n, _ := env.store.CountSessions(context.Background()); n != 0 {
		t.Errorf("expected no session, got %d", n)
	}
}

func TestLoginPost_MissingFields(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	w := env.do(postForm("/login", url.Values{"username": {"sam"}}), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Location"), "/login?error=") {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
}

func TestLoginPage(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	w := env.do(httptest.NewRequest(http.MethodGet, "/login?error=Nope", nil), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Nope") {
		t.Error("expected error message on login page")
	}

	cookie := env.signIn(t, model.RoleAdmin, "tok")
	w = env.do(httptest.NewRequest(http.MethodGet, "/login", nil), cookie)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Errorf("signed-in login page: %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestAuthMiddleware_NoSession(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	for _, path := range []string{"/", "/admin", "/assistant", "/exports/payments"} {
		w := env.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Errorf("%s: %d %q", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestHome_RedirectsByRole(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	tests := []struct {
		role model.UserRole
		want string
	}{
		{model.RoleAdmin, "/admin"},
		{model.RoleAssistantAdmin, "/assistant"},
		{model.RoleEmployee, "/employee"},
	}
	for _, tt := range tests {
		w := env.do(httptest.NewRequest(http.MethodGet, "/", nil), env.signIn(t, tt.role, "tok"))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != tt.want {
			t.Errorf("%s: %d %q", tt.role, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestAdminMiddleware_Forbidden(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	for _, role := range []model.UserRole{model.RoleAssistantAdmin, model.RoleEmployee} {
		w := env.do(httptest.NewRequest(http.MethodGet, "/admin/centers", nil), env.signIn(t, role, "tok", model.AllPermissions...))
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", role, w.Code)
		}
	}

	w := env.do(httptest.NewRequest(http.MethodGet, "/assistant", nil), env.signIn(t, model.RoleEmployee, "tok"))
	if w.Code != http.StatusForbidden {
		t.Errorf("employee on /assistant: expected 403, got %d", w.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	cookie := env.signIn(t, model.RoleAssistantAdmin, "tok", model.PermExportReports)

	w := env.do(httptest.NewRequest(http.MethodGet, "/assistant/finance", nil), cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "view_finance") {
		t.Error("expected the missing permission to be named")
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/assistant/reports", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for granted permission, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/exports/payments?format=csv") {
		t.Error("expected export links on reports page")
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/assistant", nil), cookie)
	body := w.Body.String()
	if strings.Contains(body, `href="/assistant/finance"`) {
		t.Error("finance tile shown without permission")
	}
	if !strings.Contains(body, `href="/assistant/reports"`) {
		t.Error("reports tile missing")
	}
}

func TestRemoteUnauthorized_ClosesSession(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "jwt expired"})
	})
	cookie := env.signIn(t, model.RoleAdmin, "stale")

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/centers", nil), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?error=") {
		t.Errorf("Location = %q", loc)
	}
	if n, _ := env.store.CountSessions(context.Background()); n != 0 {
		t.Errorf("expected session to be deleted, %d remain", n)
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be cleared")
	}
}

func TestCenters_ServerPaged(t *testing.T) {
	var gotAuth, gotQuery atomic.Value
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/centers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth.Store(r.Header.Get("Authorization"))
		gotQuery.Store(r.URL.RawQuery)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		var items []map[string]any
		for i := (page-1)*limit + 1; i <= min(page*limit, 45); i++ {
			items = append(items, map[string]any{"_id": fmt.Sprintf("c%d", i), "name": fmt.Sprintf("Center %d", i)})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": items,
			"meta": map[string]any{"total": 45, "page": page, "limit": limit},
		})
	})
	cookie := env.signIn(t, model.RoleAdmin, "tok-admin")

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/centers?page=2&q=dam", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotAuth.Load() != "Bearer tok-admin" {
		t.Errorf("Authorization = %v", gotAuth.Load())
	}
	q, _ := url.ParseQuery(gotQuery.Load().(string))
	if q.Get("page") != "2" || q.Get("limit") != "20" || q.Get("q") != "dam" {
		t.Errorf("remote query = %v", q)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Center 21") || strings.Contains(body, "Center 20<") {
		t.Error("expected the second page of centers")
	}
	if !strings.Contains(body, "Showing 21–40 of 45") {
		t.Error("expected pager label")
	}
	if !strings.Contains(body, "/admin/centers?limit=20&amp;page=3&amp;q=dam") {
		t.Error("expected next page link keeping the search")
	}
	if !strings.Contains(body, `hx-trigger="keyup changed delay:300ms, search"`) {
		t.Error("expected debounced search input")
	}
}

func TestCenters_SearchKeepsPageSize(t *testing.T) {
	var gotLimit atomic.Value
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit.Store(r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"_id": "c1", "name": "Damascus"}},
			"meta": map[string]any{"total": 1, "page": 1, "limit": 50},
		})
	})
	cookie := env.signIn(t, model.RoleAdmin, "tok-admin")

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/centers?limit=50&q=dam", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotLimit.Load() != "50" {
		t.Errorf("remote limit = %v, want 50", gotLimit.Load())
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="centers-limit" name="limit" value="50"`) {
		t.Error("expected the current page size carried by the search box")
	}
	if !strings.Contains(body, `hx-include="#centers-limit"`) {
		t.Error("expected the search request to include the page size")
	}
}

func TestCenters_RemoteFailure(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]any{"message": "database down"})
	})
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/centers", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected the page to render, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to load centers") {
		t.Error("expected error banner")
	}
}

func TestCenterCreate_Validation(t *testing.T) {
	env := newTestEnv(t, noRemote(t))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	w := env.do(postForm("/admin/centers", url.Values{"name": {"Homs"}, "ip": {"300.1.1.1"}}), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if loc.Path != "/admin/centers" || loc.Query().Get("error") == "" {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
}

func TestExport_Streams(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/exports/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "csv" || r.URL.Query().Get("from") != "2024-01-01" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.URL.Query().Has("ignored") {
			t.Error("unknown filter forwarded")
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="payments-2024.csv"`)
		fmt.Fprint(w, "receipt,amount\nR1,100\n")
	})
	cookie := env.signIn(t, model.RoleAssistantAdmin, "tok", model.PermExportReports)

	w := env.do(httptest.NewRequest(http.MethodGet, "/exports/payments?format=csv&from=2024-01-01&ignored=x", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=payments-2024.csv" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.String() != "receipt,amount\nR1,100\n" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExport_Rejected(t *testing.T) {
	env := newTestEnv(t, noRemote(t))

	w := env.do(httptest.NewRequest(http.MethodGet, "/exports/payments?format=doc", nil), env.signIn(t, model.RoleAdmin, "tok"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad format: expected 400, got %d", w.Code)
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/exports/payments", nil), env.signIn(t, model.RoleAssistantAdmin, "tok", model.PermViewFinance))
	if w.Code != http.StatusForbidden {
		t.Errorf("missing permission: expected 403, got %d", w.Code)
	}
}

func pricingRemote(t *testing.T, puts *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/pricing":
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
				"internal": map[string]any{"private_car_1y": 1000, "custom_fee": "250"},
				"border":   map[string]any{"car_1m": 40},
				"internalMeta": map[string]any{
					"custom_fee": map[string]any{"label": "Custom fee", "group": "extra"},
				},
				"version": 7,
			}})
		case r.Method == http.MethodPut && r.URL.Path == "/admin/pricing":
			puts.Add(1)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			internal, _ := body["internal"].(map[string]any)
			if internal["private_car_1y"] != float64(1100) {
				t.Errorf("PUT internal = %v", internal)
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		default:
			t.Errorf("unexpected remote call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestPricingPercent_Preview(t *testing.T) {
	var puts atomic.Int32
	env := newTestEnv(t, pricingRemote(t, &puts))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	form := url.Values{"scope": {"internal"}, "group": {"private"}, "percent": {"10"}, "action": {"preview"}}
	w := env.do(postForm("/admin/pricing/percent", form), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "1,100") {
		t.Error("expected the previewed value")
	}
	if !strings.Contains(body, "1 rows change") {
		t.Error("expected changed count")
	}
	if puts.Load() != 0 {
		t.Error("preview must not save")
	}
}

func TestPricingPercent_Apply(t *testing.T) {
	var puts atomic.Int32
	env := newTestEnv(t, pricingRemote(t, &puts))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	form := url.Values{"scope": {"internal"}, "group": {"private"}, "percent": {"10"}, "action": {"apply"}}
	w := env.do(postForm("/admin/pricing/percent", form), cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if loc.Query().Get("msg") == "" || loc.Query().Get("group") != "private" {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
	if puts.Load() != 1 {
		t.Errorf("expected one save, got %d", puts.Load())
	}
}

func TestPricingPercent_Invalid(t *testing.T) {
	var puts atomic.Int32
	env := newTestEnv(t, pricingRemote(t, &puts))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	for _, p := range []string{"0", "abc"} {
		form := url.Values{"scope": {"internal"}, "percent": {p}, "action": {"apply"}}
		w := env.do(postForm("/admin/pricing/percent", form), cookie)
		loc, _ := url.Parse(w.Header().Get("Location"))
		if w.Code != http.StatusSeeOther || loc.Query().Get("error") == "" {
			t.Errorf("percent %q: %d %q", p, w.Code, w.Header().Get("Location"))
		}
	}
	if puts.Load() != 0 {
		t.Error("invalid percent must not save")
	}
}

func TestPricingPage_FixedMeta(t *testing.T) {
	var puts atomic.Int32
	env := newTestEnv(t, pricingRemote(t, &puts))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/pricing?scope=internal", nil), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Private car") {
		t.Error("expected fixed label for a well-known key")
	}
	if !strings.Contains(body, `name="label" value="Custom fee"`) {
		t.Error("expected editable label for a custom key")
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, noRemote(t))
	cookie := env.signIn(t, model.RoleAdmin, "tok")

	w := env.do(httptest.NewRequest(http.MethodGet, "/logout", nil), cookie)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("logout: %d %q", w.Code, w.Header().Get("Location"))
	}
	if n, _ := env.store.CountSessions(context.Background()); n != 0 {
		t.Errorf("expected session to be deleted, %d remain", n)
	}
}
