// Package migrate applies the embedded schema migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"
	"strings"

	"dealership-backoffice/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ErrNoChange is returned when there is nothing to apply in the requested direction.
var ErrNoChange = migrate.ErrNoChange

// Direction selects what Run does.
type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	Version Direction = "version"
)

// ParseDirection validates a direction given on the command line.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down, Version:
		return d, nil
	}
	return "", fmt.Errorf("direction must be up, down or version, got %q", s)
}

// Result is what Run observed after applying the migration.
type Result struct {
	Version uint
	Dirty   bool
}

// Run applies migrations in direction against dsn. steps > 0 limits up/down to that many
// migrations; steps == 0 migrates all the way. ErrNoChange is swallowed.
func Run(dsn string, direction Direction, steps int) (Result, error) {
	if strings.TrimSpace(dsn) == "" {
		return Result{}, errors.New("DATABASE_URL is not set")
	}
	if _, err := ParseDirection(string(direction)); err != nil {
		return Result{}, err
	}
	if steps < 0 {
		return Result{}, fmt.Errorf("steps must not be negative, got %d", steps)
	}

	source, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return Result{}, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return Result{}, fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch {
	case direction == Up && steps == 0:
		err = m.Up()
	case direction == Up:
		err = m.Steps(steps)
	case direction == Down && steps == 0:
		err = m.Down()
	case direction == Down:
		err = m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return Result{}, err
	}

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Version: v, Dirty: dirty}, nil
}
