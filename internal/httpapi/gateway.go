// Package httpapi serves the REST routes of the back office with fiber. Every route decodes
// into the same request message as its gRPC method and dispatches through that method's
// descriptor, so both transports share one interceptor chain and one set of handlers.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/server"
)

// ProblemDetails is the error body returned for every failed request.
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

type gateway struct {
	h           *server.Handlers
	interceptor grpc.UnaryServerInterceptor
}

// New returns a fiber app exposing h under /api. interceptor is the unary chain the gRPC
// server uses.
func New(h *server.Handlers, interceptor grpc.UnaryServerInterceptor) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "dealership-backoffice",
		ErrorHandler: errorHandler,
	})
	g := &gateway{h: h, interceptor: interceptor}
	g.routes(app)
	return app
}

// endpoint binds one route to one unary method.
type endpoint[Req any] struct {
	srv    any
	desc   grpc.MethodDesc
	bind   func(c *fiber.Ctx, req *Req) error
	status int
	// body selects what is written on success; nil writes the whole response.
	body func(resp any) any
}

func handle[Req any](g *gateway, e endpoint[Req]) fiber.Handler {
	if e.status == 0 {
		e.status = fiber.StatusOK
	}
	return func(c *fiber.Ctx) error {
		dec := func(v any) error {
			req := v.(*Req)
			if len(c.Body()) > 0 {
				if err := json.Unmarshal(c.Body(), req); err != nil {
					return status.Error(codes.InvalidArgument, "malformed request body")
				}
			}
			if e.bind != nil {
				return e.bind(c, req)
			}
			return nil
		}
		resp, err := e.desc.Handler(e.srv, incomingContext(c), dec, g.interceptor)
		if err != nil {
			return err
		}
		if e.status == fiber.StatusNoContent {
			return c.SendStatus(fiber.StatusNoContent)
		}
		if e.body != nil {
			resp = e.body(resp)
		}
		return c.Status(e.status).JSON(resp)
	}
}

// incomingContext carries the headers the interceptors read as gRPC metadata.
func incomingContext(c *fiber.Ctx) context.Context {
	md := metadata.Pairs("x-forwarded-for", c.IP())
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		md.Set("authorization", auth)
	}
	return metadata.NewIncomingContext(c.UserContext(), md)
}

// method returns the descriptor for name in sd. Missing names are a programming error.
func method(sd grpc.ServiceDesc, name string) grpc.MethodDesc {
	for _, m := range sd.Methods {
		if m.MethodName == name {
			return m
		}
	}
	panic(fmt.Sprintf("httpapi: %s has no method %s", sd.ServiceName, name))
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	title := "internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, title = fe.Code, fe.Message
	} else if st, ok := status.FromError(err); ok {
		code = apperr.HTTPStatus(err)
		if st.Code() != codes.Internal && st.Code() != codes.Unknown {
			title = st.Message()
		}
	}
	return c.Status(code).JSON(ProblemDetails{
		Type:   fmt.Sprintf("https://httpstatuses.io/%d", code),
		Title:  title,
		Status: code,
	})
}
