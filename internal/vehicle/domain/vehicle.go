package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a car in the dealership inventory.
type Vehicle struct {
	ID          string
	Make        string
	Model       string
	Year        int
	Price       decimal.Decimal
	Color       string
	Mileage     *int
	Description string
	IsAvailable bool
	CreatedAt   time.Time
}

// Summary is the "make model" label used in purchase listings.
func (v *Vehicle) Summary() string {
	if v == nil {
		return ""
	}
	return v.Make + " " + v.Model
}

// Listing limits enforced by Validate.
const (
	MaxMakeLen        = 50
	MaxModelLen       = 50
	MaxColorLen       = 20
	MaxDescriptionLen = 500
	MinYear           = 1900
	MaxYear           = 2030
)

// Validate checks the fields required for persistence and the listing limits.
func (v *Vehicle) Validate() error {
	if v.Make == "" {
		return errors.New("make is required")
	}
	if len(v.Make) > MaxMakeLen {
		return fmt.Errorf("make must be at most %d characters", MaxMakeLen)
	}
	if v.Model == "" {
		return errors.New("model is required")
	}
	if len(v.Model) > MaxModelLen {
		return fmt.Errorf("model must be at most %d characters", MaxModelLen)
	}
	if v.Year < MinYear || v.Year > MaxYear {
		return fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	if v.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if len(v.Color) > MaxColorLen {
		return fmt.Errorf("color must be at most %d characters", MaxColorLen)
	}
	if v.Mileage != nil && *v.Mileage < 0 {
		return errors.New("mileage must not be negative")
	}
	if len(v.Description) > MaxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
	}
	return nil
}

// Filter narrows a vehicle search. Zero values mean "no constraint".
type Filter struct {
	Make          string
	Model         string
	MinYear       int
	MaxYear       int
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	AvailableOnly bool
}

// Patch holds a partial vehicle update; nil fields are left unchanged.
type Patch struct {
	Make        *string
	Model       *string
	Year        *int
	Price       *decimal.Decimal
	Color       *string
	Mileage     *int
	Description *string
	IsAvailable *bool
}

// Apply copies the set fields of p onto v.
func (p Patch) Apply(v *Vehicle) {
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
	if p.Mileage != nil {
		m := *p.Mileage
		v.Mileage = &m
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.IsAvailable != nil {
		v.IsAvailable = *p.IsAvailable
	}
}
