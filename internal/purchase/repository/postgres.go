package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"dealership-backoffice/internal/db"
	"dealership-backoffice/internal/purchase/domain"
)

const purchaseColumns = `id, user_id, vehicle_id, purchase_date, price_at_purchase, status, processed_by_admin_id`

// onePendingConstraint backs HasPending against concurrent inserts.
const onePendingConstraint = "purchases_one_pending_key"

// oneCompletedConstraint allows at most one completed purchase per vehicle.
const oneCompletedConstraint = "purchases_one_completed_per_vehicle_key"

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a purchase repository backed by conn.
func NewPostgresRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Create inserts p. A second pending row for the same (user, vehicle) fails with ErrPendingExists.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Purchase) error {
	admin := sql.NullString{String: p.ProcessedByAdminID, Valid: p.ProcessedByAdminID != ""}
	_, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.UserID, p.VehicleID, p.PurchaseDate, p.PriceAtPurchase.String(), string(p.Status), admin)
	if db.IsUniqueViolation(err, onePendingConstraint) {
		return ErrPendingExists
	}
	return err
}

// GetByID returns the purchase for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	if !db.ValidID(id) {
		return nil, nil
	}
	return scanPurchase(db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
}

// GetByIDForUpdate returns the purchase locked FOR UPDATE, or nil if not found.
func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Purchase, error) {
	if !db.ValidID(id) {
		return nil, nil
	}
	return scanPurchase(db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id))
}

// HasPending reports whether a pending purchase exists for (userID, vehicleID).
func (r *PostgresRepository) HasPending(ctx context.Context, userID, vehicleID string) (bool, error) {
	if !db.ValidID(userID) || !db.ValidID(vehicleID) {
		return false, nil
	}
	var exists bool
	err := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND vehicle_id = $2 AND status = 'pending')`,
		userID, vehicleID).Scan(&exists)
	return exists, err
}

// HasCompleted reports whether a completed purchase exists for vehicleID.
func (r *PostgresRepository) HasCompleted(ctx context.Context, vehicleID string) (bool, error) {
	if !db.ValidID(vehicleID) {
		return false, nil
	}
	var exists bool
	err := db.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE vehicle_id = $1 AND status = 'completed')`,
		vehicleID).Scan(&exists)
	return exists, err
}

// ListByUser returns the user's purchases, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Purchase, error) {
	if !db.ValidID(userID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE user_id = $1
		ORDER BY purchase_date DESC, id DESC`, userID)
}

// ListAll returns all purchases, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Purchase, error) {
	return r.list(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY purchase_date DESC, id DESC`)
}

// Transition is a conditional status update guarded on the current status.
func (r *PostgresRepository) Transition(ctx context.Context, id string, from, to domain.Status, adminID string) (bool, error) {
	if !db.ValidID(id) {
		return false, nil
	}
	admin := sql.NullString{String: adminID, Valid: db.ValidID(adminID)}
	res, err := db.Executor(ctx, r.db).ExecContext(ctx,
		`UPDATE purchases SET status = $3, processed_by_admin_id = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), admin)
	if db.IsUniqueViolation(err, oneCompletedConstraint) {
		return false, ErrVehicleSold
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Purchase, error) {
	rows, err := db.Executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPurchase(s scanner) (*domain.Purchase, error) {
	var (
		p      domain.Purchase
		price  decimal.Decimal
		status string
		admin  sql.NullString
	)
	err := s.Scan(&p.ID, &p.UserID, &p.VehicleID, &p.PurchaseDate, &price, &status, &admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	p.PriceAtPurchase = price
	if p.Status, err = domain.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("scan purchase %s: %w", p.ID, err)
	}
	p.ProcessedByAdminID = admin.String
	return &p, nil
}
