package audit

import (
	"context"
	"errors"
	"testing"

	"dealership-backoffice/internal/audit/domain"
)

type mockAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, limit, offset int32) ([]*domain.AuditLog, error) {
	return m.entries, nil
}

func TestLogger_LogEvent_Success(t *testing.T) {
	repo := &mockAuditRepo{}
	logger := NewLogger(repo, func(context.Context) string { return "192.168.1.1" })

	logger.LogEvent(context.Background(), "admin-1", "purchase_completed", "purchase", `{"purchase_id":"p1"}`)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.UserID != "admin-1" || e.Action != "purchase_completed" || e.Resource != "purchase" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.IP != "192.168.1.1" {
		t.Errorf("ip = %q, want 192.168.1.1", e.IP)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Error("id and created_at should be set")
	}
}

func TestLogger_LogEvent_NoExtractor(t *testing.T) {
	repo := &mockAuditRepo{}
	NewLogger(repo, nil).LogEvent(context.Background(), "", "login_failure", "auth", "")
	if len(repo.entries) != 1 || repo.entries[0].IP != "unknown" {
		t.Fatalf("entries = %+v, want one entry with ip unknown", repo.entries)
	}
}

func TestLogger_LogEvent_RepoErrorIsSwallowed(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("db down")}
	NewLogger(repo, nil).LogEvent(context.Background(), "u", "a", "r", "")
	if len(repo.entries) != 0 {
		t.Error("no entry should be stored on error")
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var l *Logger
	l.LogEvent(context.Background(), "u", "a", "r", "")
	NewLogger(nil, nil).LogEvent(context.Background(), "u", "a", "r", "")
}

func TestMeta(t *testing.T) {
	testCases := []struct {
		kv   []string
		want string
	}{
		{nil, ""},
		{[]string{"purchase_id", "p1"}, "purchase_id=p1"},
		{[]string{"purchase_id", "p1", "vehicle_id", "v1"}, "purchase_id=p1 vehicle_id=v1"},
		{[]string{"purchase_id", "p1", "dangling"}, "purchase_id=p1"},
	}
	for _, tc := range testCases {
		if got := Meta(tc.kv...); got != tc.want {
			t.Errorf("Meta(%q) = %q, want %q", tc.kv, got, tc.want)
		}
	}
}
