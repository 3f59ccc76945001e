// Package vehiclev1 holds the VehicleService messages and service descriptor.
package vehiclev1

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID          string          `json:"id"`
	Make        string          `json:"make"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	Price       decimal.Decimal `json:"price"`
	Color       string          `json:"color,omitempty"`
	Mileage     *int            `json:"mileage,omitempty"`
	Description string          `json:"description,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SearchVehiclesRequest filters available vehicles. Unset fields do not constrain.
type SearchVehiclesRequest struct {
	Make     string           `json:"make,omitempty"`
	Model    string           `json:"model,omitempty"`
	MinYear  int              `json:"minYear,omitempty"`
	MaxYear  int              `json:"maxYear,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
}

type SearchVehiclesResponse struct {
	Vehicles []*Vehicle `json:"vehicles"`
}

type GetVehicleRequest struct {
	ID string `json:"id"`
}

// CreateVehicleRequest adds a vehicle; new vehicles are always available.
type CreateVehicleRequest struct {
	Make        string          `json:"make"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	Price       decimal.Decimal `json:"price"`
	Color       string          `json:"color,omitempty"`
	Mileage     *int            `json:"mileage,omitempty"`
	Description string          `json:"description,omitempty"`
}

// UpdateVehicleRequest is a partial update gated by an update_vehicle OTP.
type UpdateVehicleRequest struct {
	ID          string           `json:"id"`
	OTPCode     string           `json:"otpCode"`
	Make        *string          `json:"make,omitempty"`
	Model       *string          `json:"model,omitempty"`
	Year        *int             `json:"year,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Color       *string          `json:"color,omitempty"`
	Mileage     *int             `json:"mileage,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
}

type DeleteVehicleRequest struct {
	ID string `json:"id"`
}

type DeleteVehicleResponse struct{}

type RequestUpdateOTPRequest struct{}

type OTPRequestedResponse struct {
	Message string `json:"message"`
}
