package memory

import (
	"context"

	auditdomain "dealership-backoffice/internal/audit/domain"
)

// AuditRepo implements the audit log repository.
type AuditRepo struct{ s *Store }

func (r *AuditRepo) Create(ctx context.Context, a *auditdomain.AuditLog) error {
	defer r.s.lock(ctx)()
	r.s.audit = append(r.s.audit, *a)
	return nil
}

func (r *AuditRepo) List(ctx context.Context, limit, offset int32) ([]*auditdomain.AuditLog, error) {
	defer r.s.lock(ctx)()
	var out []*auditdomain.AuditLog
	for i := len(r.s.audit) - 1 - int(offset); i >= 0 && (limit <= 0 || int32(len(out)) < limit); i-- {
		a := r.s.audit[i]
		out = append(out, &a)
	}
	return out, nil
}
