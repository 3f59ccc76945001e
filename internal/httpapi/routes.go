package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	auditv1 "dealership-backoffice/api/audit/v1"
	authv1 "dealership-backoffice/api/auth/v1"
	devv1 "dealership-backoffice/api/dev/v1"
	healthv1 "dealership-backoffice/api/health/v1"
	purchasev1 "dealership-backoffice/api/purchase/v1"
	vehiclev1 "dealership-backoffice/api/vehicle/v1"
)

func (g *gateway) routes(app *fiber.App) {
	app.Get("/health", g.health)

	api := app.Group("/api")
	g.authRoutes(api.Group("/auth"))
	g.vehicleRoutes(api.Group("/vehicles"))
	g.purchaseRoutes(api.Group("/purchases"))

	api.Get("/audit-logs", handle(g, endpoint[auditv1.ListAuditLogsRequest]{
		srv:  g.h.Audit,
		desc: method(auditv1.AuditService_ServiceDesc, "ListAuditLogs"),
		bind: func(c *fiber.Ctx, req *auditv1.ListAuditLogsRequest) error {
			req.Limit = int32(c.QueryInt("limit"))
			return nil
		},
		body: func(resp any) any { return resp.(*auditv1.ListAuditLogsResponse).Logs },
	}))

	if g.h.Dev != nil {
		api.Get("/dev/otp", handle(g, endpoint[devv1.GetOTPRequest]{
			srv:  g.h.Dev,
			desc: method(devv1.DevService_ServiceDesc, "GetOTP"),
			bind: func(c *fiber.Ctx, req *devv1.GetOTPRequest) error {
				req.UserID, req.Purpose = c.Query("userId"), c.Query("purpose")
				return nil
			},
		}))
	}
}

func (g *gateway) authRoutes(r fiber.Router) {
	sd := authv1.AuthService_ServiceDesc
	r.Post("/register/request-otp", handle(g, endpoint[authv1.RegisterRequest]{srv: g.h.Auth, desc: method(sd, "RegisterRequestOTP")}))
	r.Post("/register/verify-otp", handle(g, endpoint[authv1.VerifyOTPRequest]{srv: g.h.Auth, desc: method(sd, "RegisterVerifyOTP")}))
	r.Post("/login/request-otp", handle(g, endpoint[authv1.LoginRequest]{srv: g.h.Auth, desc: method(sd, "LoginRequestOTP")}))
	r.Post("/login/verify-otp", handle(g, endpoint[authv1.VerifyOTPRequest]{srv: g.h.Auth, desc: method(sd, "LoginVerifyOTP")}))
	r.Get("/customers", handle(g, endpoint[authv1.ListCustomersRequest]{
		srv:  g.h.Auth,
		desc: method(sd, "ListCustomers"),
		body: func(resp any) any { return resp.(*authv1.ListCustomersResponse).Customers },
	}))
}

func (g *gateway) vehicleRoutes(r fiber.Router) {
	sd := vehiclev1.VehicleService_ServiceDesc
	r.Get("/", handle(g, endpoint[vehiclev1.SearchVehiclesRequest]{
		srv:  g.h.Vehicles,
		desc: method(sd, "SearchVehicles"),
		bind: bindSearch,
		body: func(resp any) any { return resp.(*vehiclev1.SearchVehiclesResponse).Vehicles },
	}))
	r.Post("/request-update-otp", handle(g, endpoint[vehiclev1.RequestUpdateOTPRequest]{
		srv: g.h.Vehicles, desc: method(sd, "RequestUpdateOTP"), status: fiber.StatusNoContent,
	}))
	r.Get("/:id", handle(g, endpoint[vehiclev1.GetVehicleRequest]{
		srv:  g.h.Vehicles,
		desc: method(sd, "GetVehicle"),
		bind: func(c *fiber.Ctx, req *vehiclev1.GetVehicleRequest) error { req.ID = c.Params("id"); return nil },
	}))
	r.Post("/", handle(g, endpoint[vehiclev1.CreateVehicleRequest]{
		srv: g.h.Vehicles, desc: method(sd, "CreateVehicle"), status: fiber.StatusCreated,
	}))
	r.Put("/:id", handle(g, endpoint[vehiclev1.UpdateVehicleRequest]{
		srv:  g.h.Vehicles,
		desc: method(sd, "UpdateVehicle"),
		bind: func(c *fiber.Ctx, req *vehiclev1.UpdateVehicleRequest) error { req.ID = c.Params("id"); return nil },
	}))
	r.Delete("/:id", handle(g, endpoint[vehiclev1.DeleteVehicleRequest]{
		srv:    g.h.Vehicles,
		desc:   method(sd, "DeleteVehicle"),
		bind:   func(c *fiber.Ctx, req *vehiclev1.DeleteVehicleRequest) error { req.ID = c.Params("id"); return nil },
		status: fiber.StatusNoContent,
	}))
}

func (g *gateway) purchaseRoutes(r fiber.Router) {
	sd := purchasev1.PurchaseService_ServiceDesc
	r.Post("/request", handle(g, endpoint[purchasev1.RequestPurchaseRequest]{srv: g.h.Purchases, desc: method(sd, "RequestPurchase")}))
	r.Post("/request-otp", handle(g, endpoint[purchasev1.RequestPurchaseOTPRequest]{
		srv: g.h.Purchases, desc: method(sd, "RequestPurchaseOTP"), status: fiber.StatusNoContent,
	}))
	r.Get("/history", handle(g, endpoint[purchasev1.GetHistoryRequest]{
		srv:  g.h.Purchases,
		desc: method(sd, "GetHistory"),
		body: func(resp any) any { return resp.(*purchasev1.GetHistoryResponse).Purchases },
	}))
	r.Get("/", handle(g, endpoint[purchasev1.ListPurchasesRequest]{
		srv:  g.h.Purchases,
		desc: method(sd, "ListPurchases"),
		body: func(resp any) any { return resp.(*purchasev1.ListPurchasesResponse).Purchases },
	}))
	r.Get("/:id", handle(g, endpoint[purchasev1.GetPurchaseRequest]{
		srv:  g.h.Purchases,
		desc: method(sd, "GetPurchase"),
		bind: func(c *fiber.Ctx, req *purchasev1.GetPurchaseRequest) error { req.ID = c.Params("id"); return nil },
	}))
	decide := func(c *fiber.Ctx, req *purchasev1.DecidePurchaseRequest) error { req.ID = c.Params("id"); return nil }
	r.Put("/complete/:id", handle(g, endpoint[purchasev1.DecidePurchaseRequest]{
		srv: g.h.Purchases, desc: method(sd, "CompletePurchase"), bind: decide, status: fiber.StatusNoContent,
	}))
	r.Put("/reject/:id", handle(g, endpoint[purchasev1.DecidePurchaseRequest]{
		srv: g.h.Purchases, desc: method(sd, "RejectPurchase"), bind: decide, status: fiber.StatusNoContent,
	}))
}

// health answers 503 when a readiness check fails.
func (g *gateway) health(c *fiber.Ctx) error {
	resp, err := g.h.Health.HealthCheck(c.UserContext(), &healthv1.HealthCheckRequest{})
	if err != nil {
		return err
	}
	code := fiber.StatusOK
	if resp.Status != healthv1.ServingStatusServing {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func bindSearch(c *fiber.Ctx, req *vehiclev1.SearchVehiclesRequest) error {
	req.Make = c.Query("make")
	req.Model = c.Query("model")
	req.MinYear = c.QueryInt("minYear")
	req.MaxYear = c.QueryInt("maxYear")
	var err error
	if req.MinPrice, err = queryDecimal(c, "minPrice"); err != nil {
		return err
	}
	req.MaxPrice, err = queryDecimal(c, "maxPrice")
	return err
}

func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a number", key)
	}
	return &d, nil
}
