package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"dealership-backoffice/internal/db"
	"dealership-backoffice/internal/vehicle/domain"
)

// ErrInUse is returned by Delete when purchases still reference the vehicle.
var ErrInUse = errors.New("vehicle has purchases")

const vehicleColumns = `id, make, model, year, price, color, mileage, description, is_available, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a vehicle repository backed by conn.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the vehicle for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if !db.ValidID(id) {
		return nil, nil
	}
	row := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

// GetByIDForUpdate returns the vehicle for id locked FOR UPDATE, or nil if not found.
// Must be called inside db.Transactor.WithinTx for the lock to outlive the statement.
func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error) {
	if !db.ValidID(id) {
		return nil, nil
	}
	row := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
	return scanVehicle(row)
}

// Search builds a filtered query; make/model match case-insensitive substrings.
func (r *PostgresRepository) Search(ctx context.Context, f domain.Filter) ([]*domain.Vehicle, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Make != "" {
		add("make ILIKE $%d", "%"+escapeLike(f.Make)+"%")
	}
	if f.Model != "" {
		add("model ILIKE $%d", "%"+escapeLike(f.Model)+"%")
	}
	if f.MinYear > 0 {
		add("year >= $%d", f.MinYear)
	}
	if f.MaxYear > 0 {
		add("year <= $%d", f.MaxYear)
	}
	if f.MinPrice != nil {
		add("price >= $%d", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		add("price <= $%d", f.MaxPrice.String())
	}
	if f.AvailableOnly {
		where = append(where, "is_available")
	}
	q := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY make, model, id`

	rows, err := db.Executor(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts v. ID and CreatedAt must be set by the caller.
func (r *PostgresRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.Make, v.Model, v.Year, v.Price.String(), nullString(v.Color), nullInt(v.Mileage),
		nullString(v.Description), v.IsAvailable, v.CreatedAt)
	return err
}

// Update overwrites every mutable column of v.
func (r *PostgresRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE vehicles SET make = $2, model = $3, year = $4, price = $5, color = $6, mileage = $7,
		 description = $8, is_available = $9 WHERE id = $1`,
		v.ID, v.Make, v.Model, v.Year, v.Price.String(), nullString(v.Color), nullInt(v.Mileage),
		nullString(v.Description), v.IsAvailable)
	return err
}

// Delete removes the vehicle. Returns ErrInUse when purchases reference it.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !db.ValidID(id) {
		return false, nil
	}
	res, err := db.Executor(ctx, r.db).ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return false, ErrInUse
		}
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetAvailable sets is_available for the vehicle.
func (r *PostgresRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	if !db.ValidID(id) {
		return nil
	}
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE vehicles SET is_available = $2 WHERE id = $1`, id, available)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var (
		v           domain.Vehicle
		price       decimal.Decimal
		color, desc sql.NullString
		mileage     sql.NullInt64
	)
	err := s.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &price, &color, &mileage, &desc, &v.IsAvailable, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	v.Price = price
	v.Color = color.String
	v.Description = desc.String
	if mileage.Valid {
		m := int(mileage.Int64)
		v.Mileage = &m
	}
	return &v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
