package store

import (
	"context"

	"github.com/me/insadmin/pkg/model"
)

// Store persists console login sessions. Domain data lives in the remote
// API; this is the only durable state the console owns.
type Store interface {
	CreateSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error)
	CountSessions(ctx context.Context) (int, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
}
