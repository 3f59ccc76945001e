package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dealership-backoffice/internal/db"
	"dealership-backoffice/internal/user/domain"
)

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

const userColumns = `id, full_name, email, phone, password_hash, role, status, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository backed by db. Calls made inside
// db.Transactor.WithinTx run on that transaction.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !db.ValidID(id) {
		return nil, nil
	}
	row := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	phone := sql.NullString{String: u.Phone, Valid: u.Phone != ""}
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.FullName, u.Email, phone, u.PasswordHash, string(u.Role), string(u.Status), u.CreatedAt, u.UpdatedAt)
	if db.IsUniqueViolation(err, "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

// SetStatus updates status and updated_at for the user.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if !db.ValidID(id) {
		return nil
	}
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), time.Now().UTC())
	return err
}

// ListByRole returns users with role ordered by full name.
func (r *PostgresRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	rows, err := db.Executor(ctx, r.db).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY full_name, id`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		u            domain.User
		phone        sql.NullString
		role, status string
	)
	err := s.Scan(&u.ID, &u.FullName, &u.Email, &phone, &u.PasswordHash, &role, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Phone = phone.String
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	return &u, nil
}
