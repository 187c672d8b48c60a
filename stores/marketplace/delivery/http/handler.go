package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/delivery"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/marketplace"
	authMiddleware "github.com/niftyx/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

// New will initialize the marketplace admin endpoints
func New(e *echo.Echo, uc marketplace.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{marketplace: uc}

	g := e.Group("/marketplace")
	g.GET("/settings", h.getStatus, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.PATCH("/fee", h.setFee, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.POST("/withdraw", h.withdrawFees, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) getStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	status, err := h.marketplace.GetStatus(ctx, caller)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, status)
}

func (h *handler) setFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		FeeBps uint64 `json:"feeBps"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.SetFee(ctx, caller, p.FeeBps); err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdrawFees(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	amount, err := h.marketplace.WithdrawFees(ctx, caller)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	type response struct {
		Amount uint64 `json:"amount"`
	}
	return delivery.MakeJsonResp(c, http.StatusOK, response{Amount: amount})
}
