// Package purchasev1 holds the PurchaseService messages and service descriptor.
package purchasev1

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestPurchaseRequest struct {
	VehicleID string `json:"vehicleId"`
	OTPCode   string `json:"otpCode"`
}

type RequestPurchaseOTPRequest struct {
	VehicleID string `json:"vehicleId,omitempty"`
}

type OTPRequestedResponse struct {
	Message string `json:"message"`
}

// HistoryItem is a purchase as its customer sees it.
type HistoryItem struct {
	ID              string          `json:"id"`
	VehicleID       string          `json:"vehicleId"`
	VehicleMake     string          `json:"vehicleMake"`
	VehicleModel    string          `json:"vehicleModel"`
	VehicleYear     int             `json:"vehicleYear"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Status          string          `json:"status"`
	PurchaseDate    time.Time       `json:"purchaseDate"`
}

type GetHistoryRequest struct{}

type GetHistoryResponse struct {
	Purchases []*HistoryItem `json:"purchases"`
}

// AdminListItem is a purchase with customer and vehicle display fields.
type AdminListItem struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	CustomerName    string          `json:"customerName"`
	VehicleID       string          `json:"vehicleId"`
	VehicleMake     string          `json:"vehicleMake"`
	VehicleModel    string          `json:"vehicleModel"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Status          string          `json:"status"`
	PurchaseDate    time.Time       `json:"purchaseDate"`
}

type ListPurchasesRequest struct{}

type ListPurchasesResponse struct {
	Purchases []*AdminListItem `json:"purchases"`
}

type GetPurchaseRequest struct {
	ID string `json:"id"`
}

type PurchaseDetail struct {
	AdminListItem
	VehicleYear          int    `json:"vehicleYear"`
	ProcessedByAdminID   string `json:"processedByAdminId,omitempty"`
	ProcessedByAdminName string `json:"processedByAdminName,omitempty"`
}

type DecidePurchaseRequest struct {
	ID string `json:"id"`
}

// DecidePurchaseResponse reports the status the purchase ended in.
type DecidePurchaseResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
