package ui

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/me/insadmin/internal/store"
	"github.com/me/insadmin/pkg/model"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "insadmin_session"
	// SessionDuration is the default session lifetime.
	SessionDuration = 24 * time.Hour
)

// SessionManager keeps the console sessions of signed-in users. A session
// holds the remote bearer token and the identity captured at sign-in; it
// is never edited afterwards.
type SessionManager struct {
	store store.Store
	ttl   time.Duration
}

// NewSessionManager creates a session manager. A non-positive ttl uses
// SessionDuration.
func NewSessionManager(st store.Store, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	return &SessionManager{store: st, ttl: ttl}
}

// CreateSession records the sign-in of user. The session expires after
// the manager's ttl or when the token does, whichever comes first.
func (sm *SessionManager) CreateSession(ctx context.Context, user model.User, perms model.PermissionSet, token string, tokenExp time.Time) (*model.Session, error) {
	now := time.Now().UTC()
	expires := now.Add(sm.ttl)
	if !tokenExp.IsZero() && tokenExp.Before(expires) {
		expires = tokenExp
	}

	sess := &model.Session{
		ID:          "sess_" + rand.Text(),
		UserID:      user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Role:        user.Role,
		Permissions: perms,
		Token:       token,
		TokenExp:    tokenExp,
		CreatedAt:   now,
		ExpiresAt:   expires,
	}
	if err := sm.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// GetSession returns the live session with id, or nil when there is none.
// A session found past its expiry or its token's is deleted on the spot.
func (sm *SessionManager) GetSession(ctx context.Context, id string) (*model.Session, error) {
	sess, err := sm.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if sess.IsExpired() || sess.IsTokenExpired() {
		_ = sm.store.DeleteSession(ctx, id)
		return nil, nil
	}
	return sess, nil
}

// GetSessionFromRequest resolves the session named by the request cookie.
// A request without the cookie has no session and no error.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*model.Session, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}
	return sm.GetSession(r.Context(), c.Value)
}

// DeleteSession signs one session out.
func (sm *SessionManager) DeleteSession(ctx context.Context, id string) error {
	return sm.store.DeleteSession(ctx, id)
}

// RevokeUser signs out every session of userID, e.g. after the account
// was deleted remotely.
func (sm *SessionManager) RevokeUser(ctx context.Context, userID string) (int64, error) {
	n, err := sm.store.DeleteSessionsByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions of %s: %w", userID, err)
	}
	return n, nil
}

// CleanupExpiredSessions purges sessions past their expiry.
func (sm *SessionManager) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return sm.store.DeleteExpiredSessions(ctx)
}

// SetSessionCookie issues the cookie for sess. It expires with the session.
func SetSessionCookie(w http.ResponseWriter, sess *model.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie tells the browser to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
