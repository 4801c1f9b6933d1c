package store

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/me/insadmin/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleSession(id string) *model.Session {
	now := time.Now()
	return &model.Session{
		ID:          id,
		UserID:      "u1",
		Username:    "mona",
		FullName:    "Mona K",
		Role:        model.RoleAssistantAdmin,
		Permissions: model.NewPermissionSet(model.PermViewFinance, model.PermExportReports),
		Token:       "tok-" + id,
		TokenExp:    now.Add(2 * time.Hour),
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
}

// --- Migration tests ---

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	// Migrating twice must not error.
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSchema_SessionColumns(t *testing.T) {
	st := testStore(t)
	rows, err := st.db.QueryContext(context.Background(), "SELECT name FROM pragma_table_info('sessions')")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	for _, col := range []string{"full_name", "permissions", "token_exp"} {
		if !cols[col] {
			t.Errorf("column %s missing", col)
		}
	}
}

// --- Session tests ---

func TestCreateAndGetSession(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	sess := sampleSession("sess_a")

	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("got nil session")
	}
	if got.Username != "mona" || got.FullName != "Mona K" || got.Token != "tok-sess_a" {
		t.Errorf("session = %+v", got)
	}
	if got.Role != model.RoleAssistantAdmin {
		t.Errorf("role = %q", got.Role)
	}
	if !got.Permissions.HasAll(model.PermViewFinance, model.PermExportReports) || got.Permissions.Len() != 2 {
		t.Errorf("permissions = %v", got.Permissions.List())
	}
	if got.ExpiresAt.Unix() != sess.ExpiresAt.Unix() || got.TokenExp.Unix() != sess.TokenExp.Unix() {
		t.Errorf("times = %v %v", got.ExpiresAt, got.TokenExp)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetSession(context.Background(), "sess_nonexistent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent session")
	}
}

func TestCreateSession_Duplicate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	if err := st.CreateSession(ctx, sampleSession("sess_dup")); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateSession(ctx, sampleSession("sess_dup")); err == nil {
		t.Error("expected primary key violation")
	}
}

func TestSession_ZeroTokenExp(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	sess := sampleSession("sess_opaque")
	sess.TokenExp = time.Time{}
	sess.Permissions = model.NewPermissionSet()
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatal(err)
	}
	got, _ := st.GetSession(ctx, sess.ID)
	if got == nil || !got.TokenExp.IsZero() {
		t.Fatalf("token exp = %v, want zero", got)
	}
	if got.Permissions.Len() != 0 {
		t.Errorf("permissions = %v", got.Permissions.List())
	}
	if got.IsTokenExpired() {
		t.Error("unknown expiry should not count as expired")
	}
}

func TestDeleteSession(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	_ = st.CreateSession(ctx, sampleSession("sess_del"))

	if err := st.DeleteSession(ctx, "sess_del"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := st.GetSession(ctx, "sess_del")
	if got != nil {
		t.Error("session still present after delete")
	}
	// Deleting a missing session is not an error.
	if err := st.DeleteSession(ctx, "sess_del"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	live := sampleSession("sess_live")
	expired := sampleSession("sess_expired")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	tokenDead := sampleSession("sess_token")
	tokenDead.TokenExp = time.Now().Add(-time.Minute)
	for _, s := range []*model.Session{live, expired, tokenDead} {
		if err := st.CreateSession(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	n, err := st.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	count, _ := st.CountSessions(ctx)
	if count != 1 {
		t.Errorf("remaining = %d, want 1", count)
	}
}

func TestDeleteSessionsByUserID(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	a, b := sampleSession("sess_1"), sampleSession("sess_2")
	other := sampleSession("sess_3")
	other.UserID = "u2"
	for _, s := range []*model.Session{a, b, other} {
		_ = st.CreateSession(ctx, s)
	}

	n, err := st.DeleteSessionsByUserID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	if got, _ := st.GetSession(ctx, "sess_3"); got == nil {
		t.Error("other user's session was deleted")
	}
}

func TestMigrate_UpgradesOldSchema(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	ctx := context.Background()

	// A sessions table from before full_name and permissions existed.
	if _, err := st.db.ExecContext(ctx, `CREATE TABLE sessions (
		id TEXT PRIMARY KEY, user_id TEXT NOT NULL, username TEXT NOT NULL,
		role TEXT NOT NULL, token TEXT NOT NULL, token_exp INTEGER NOT NULL,
		created_at INTEGER NOT NULL, expires_at INTEGER NOT NULL)`); err != nil {
		t.Fatal(err)
	}
	if _, err := st.db.ExecContext(ctx,
		`INSERT INTO sessions VALUES ('sess_old','u1','old','admin','t',0,1,?)`,
		time.Now().Add(time.Hour).Unix()); err != nil {
		t.Fatal(err)
	}

	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	got, err := st.GetSession(ctx, "sess_old")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if got.FullName != "" || got.Permissions.Len() != 0 || !got.IsAdmin() {
		t.Errorf("upgraded session = %+v", got)
	}
}

func TestPing(t *testing.T) {
	st := testStore(t)
	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
	var _ Store = st
}
