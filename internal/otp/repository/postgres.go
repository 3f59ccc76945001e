package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dealership-backoffice/internal/db"
	"dealership-backoffice/internal/otp/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an OTP repository backed by conn.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// LockPair takes a transaction-scoped advisory lock keyed on the pair.
func (r *PostgresRepository) LockPair(ctx context.Context, userID string, purpose domain.Purpose) error {
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "otp:"+userID+":"+string(purpose))
	return err
}

// InvalidateActive marks unused, unexpired codes for the pair as used.
func (r *PostgresRepository) InvalidateActive(ctx context.Context, userID string, purpose domain.Purpose, now time.Time) (int64, error) {
	if !db.ValidID(userID) {
		return 0, nil
	}
	res, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE otp_codes SET is_used = TRUE
		 WHERE user_id = $1 AND purpose = $2 AND NOT is_used AND expires_at >= $3`,
		userID, string(purpose), now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Create inserts c. Only the hash is written.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Code) error {
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO otp_codes (id, user_id, code_hash, purpose, expires_at, is_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.CodeHash, string(c.Purpose), c.ExpiresAt, c.IsUsed, c.CreatedAt)
	return err
}

// FindLatestUnused returns the newest unused code matching the pair and hash, or nil.
func (r *PostgresRepository) FindLatestUnused(ctx context.Context, userID string, purpose domain.Purpose, codeHash string) (*domain.Code, error) {
	if !db.ValidID(userID) {
		return nil, nil
	}
	var (
		c    domain.Code
		purp string
	)
	err := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, user_id, code_hash, purpose, expires_at, is_used, created_at
		 FROM otp_codes
		 WHERE user_id = $1 AND purpose = $2 AND code_hash = $3 AND NOT is_used
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		userID, string(purpose), codeHash,
	).Scan(&c.ID, &c.UserID, &c.CodeHash, &purp, &c.ExpiresAt, &c.IsUsed, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	c.Purpose = domain.Purpose(purp)
	return &c, nil
}

// MarkUsed is a conditional update; exactly one concurrent caller sees true.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	if !db.ValidID(id) {
		return false, nil
	}
	res, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE otp_codes SET is_used = TRUE WHERE id = $1 AND NOT is_used`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
