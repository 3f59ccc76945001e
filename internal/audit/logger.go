package audit

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealership-backoffice/internal/audit/domain"
	auditrepo "dealership-backoffice/internal/audit/repository"
)

// IPExtractor returns the caller's address for ctx.
type IPExtractor func(context.Context) string

// AuditLogger records one event. Implementations must not fail the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, resource, metadata string)
}

// Logger persists audit events through the audit repository.
type Logger struct {
	repo   auditrepo.Repository
	callIP IPExtractor
	now    func() time.Time
}

// NewLogger returns a Logger writing to repo. callIP may be nil.
func NewLogger(repo auditrepo.Repository, callIP IPExtractor) *Logger {
	return &Logger{repo: repo, callIP: callIP, now: func() time.Time { return time.Now().UTC() }}
}

// LogEvent stores one entry. Storage errors are logged and dropped.
func (l *Logger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        l.ip(ctx),
		Metadata:  metadata,
		CreatedAt: l.now(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: dropped %s/%s for %q: %v", resource, action, userID, err)
	}
}

func (l *Logger) ip(ctx context.Context) string {
	if l.callIP == nil {
		return unknown
	}
	if ip := l.callIP(ctx); ip != "" {
		return ip
	}
	return unknown
}

// Meta formats key/value pairs as "k1=v1 k2=v2" for the metadata column. A trailing key
// without a value is ignored.
func Meta(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv[i])
		b.WriteByte('=')
		b.WriteString(kv[i+1])
	}
	return b.String()
}

// Nop returns an AuditLogger that discards events.
func Nop() AuditLogger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) LogEvent(context.Context, string, string, string, string) {}
