package ui

import (
	"context"
	"net/http"

	"github.com/me/insadmin/pkg/model"
)

// Context keys for session data.
type contextKey string

const (
	sessionContextKey contextKey = "session"
)

// SessionFromContext retrieves the session from the request context.
func SessionFromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionContextKey).(*model.Session)
	return sess
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// AuthMiddleware validates the session and adds it to the request context.
// If no valid session exists, it redirects to the login page.
func (ui *UI) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := ui.sessions.GetSessionFromRequest(r)
		if err != nil {
			ui.logger.Error("session lookup failed", "error", err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if sess == nil {
			ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// AdminMiddleware ensures the user has admin role.
// Must be used after AuthMiddleware.
func (ui *UI) AdminMiddleware(next http.Handler) http.Handler {
	return ui.RequireRole(model.RoleAdmin)(next)
}

// AssistantMiddleware admits assistant admins and admins.
func (ui *UI) AssistantMiddleware(next http.Handler) http.Handler {
	return ui.RequireRole(model.RoleAssistantAdmin, model.RoleAdmin)(next)
}

// RequireRole admits sessions holding one of roles. Other signed-in users
// get a 403 page.
func (ui *UI) RequireRole(roles ...model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			for _, role := range roles {
				if sess.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			ui.renderForbidden(w, r, "This area is not available for your account.")
		})
	}
}

// RequirePermission admits sessions that hold p. Admins hold every
// permission.
func (ui *UI) RequirePermission(p model.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !sess.Can(p) {
				ui.logger.Info("permission denied", "user", sess.Username, "permission", string(p), "path", r.URL.Path)
				ui.renderForbidden(w, r, "You do not have the "+string(p)+" permission.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
