package engine

import "context"

// Actions checked against the authorization policy.
const (
	ActionVehicleSearch      = "vehicle.search"
	ActionVehicleGet         = "vehicle.get"
	ActionVehicleCreate      = "vehicle.create"
	ActionVehicleUpdate      = "vehicle.update"
	ActionVehicleDelete      = "vehicle.delete"
	ActionVehicleRequestOTP  = "vehicle.request_otp"
	ActionPurchaseRequest    = "purchase.request"
	ActionPurchaseRequestOTP = "purchase.request_otp"
	ActionPurchaseHistory    = "purchase.history"
	ActionPurchaseList       = "purchase.list"
	ActionPurchaseGet        = "purchase.get"
	ActionPurchaseComplete   = "purchase.complete"
	ActionPurchaseReject     = "purchase.reject"
	ActionCustomerList       = "customer.list"
	ActionAuditList          = "audit.list"
)

// Evaluator decides whether a role may perform an action.
type Evaluator interface {
	Allow(ctx context.Context, role, action string) (bool, error)
}
