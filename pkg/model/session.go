package model

import "time"

// Session is the immutable context of a signed-in console user. It is
// created once at login, read by middleware and handlers, and deleted at
// logout.
type Session struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Username    string        `json:"username"`
	FullName    string        `json:"full_name"`
	Role        UserRole      `json:"role"`
	Permissions PermissionSet `json:"-"`
	Token       string        `json:"-"` // Remote API bearer token (not exposed via JSON)
	TokenExp    time.Time     `json:"-"` // Token expiration (not exposed via JSON)
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsTokenExpired reports whether the bearer token has expired. A zero
// TokenExp means the expiry is unknown and the token is treated as valid.
func (s *Session) IsTokenExpired() bool {
	if s.TokenExp.IsZero() {
		return false
	}
	return time.Now().After(s.TokenExp)
}

// IsAdmin reports whether the session has admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsAssistant reports whether the session has assistant admin role.
func (s *Session) IsAssistant() bool {
	return s.Role == RoleAssistantAdmin
}

// Can reports whether the session holds p. Admins hold every permission.
func (s *Session) Can(p Permission) bool {
	return s.IsAdmin() || s.Permissions.Has(p)
}

// CanAll reports whether the session holds every permission in ps.
func (s *Session) CanAll(ps ...Permission) bool {
	return s.IsAdmin() || s.Permissions.HasAll(ps...)
}

// CanExport reports whether the session may download report exports.
func (s *Session) CanExport() bool {
	return s.Can(PermExportReports)
}

// HomePath returns the landing page for the session's role.
func (s *Session) HomePath() string {
	switch s.Role {
	case RoleAdmin:
		return "/admin"
	case RoleAssistantAdmin:
		return "/assistant"
	default:
		return "/employee"
	}
}

// DisplayName returns the full name, falling back to the username.
func (s *Session) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Username
}
