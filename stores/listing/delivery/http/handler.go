package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/delivery"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/listing"
	mmiddleware "github.com/niftyx/goapi/middleware"
	authMiddleware "github.com/niftyx/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.UseCase
}

// New will initialize the listings endpoints
func New(e *echo.Echo, uc listing.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing: uc}

	g := e.Group("/listings")
	g.POST("", h.listItem, authMiddleware.Auth())
	g.GET("", h.findAll)
	g.GET("/:id", h.getActiveListing)
	g.GET("/:id/events", h.getEvents)
	g.POST("/:id/buy", h.buyItem, authMiddleware.Auth())
	g.POST("/:id/bids", h.placeBid, authMiddleware.Auth())
	g.POST("/:id/end", h.endAuction)
	g.DELETE("/:id", h.cancelListing, authMiddleware.Auth())

	e.GET("/accounts/:address/listings", h.findBySeller, mmiddleware.IsValidAddress("address"))
}

func secondsToDuration(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}

func parseListingId(c echo.Context) (domain.ListingId, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.ListingId(id), nil
}

func (h *handler) listItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type payload struct {
		Collection domain.Address `json:"collection" validate:"required"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required"`
		Price      uint64         `json:"price" validate:"required"`
		IsAuction  bool           `json:"isAuction"`
		// DurationSec is required for auctions, the end time is fixed at
		// listing time and never extended
		DurationSec int64 `json:"durationSec"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := h.listing.ListItem(ctx, listing.ListItemPayload{
		Seller:     seller,
		Collection: p.Collection,
		TokenId:    p.TokenId,
		Price:      p.Price,
		IsAuction:  p.IsAuction,
		Duration:   secondsToDuration(p.DurationSec),
	})
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	type response struct {
		ListingId domain.ListingId `json:"listingId"`
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, response{ListingId: id})
}

type findAllParams struct {
	Seller     *domain.Address `query:"seller"`
	Collection *domain.Address `query:"collection"`
	IsAuction  *bool           `query:"isAuction"`
	Active     *bool           `query:"active"`
	Offset     int32           `query:"offset"`
	Limit      int32           `query:"limit"`
}

func (p *findAllParams) toOptions() []listing.FindAllOptionsFunc {
	opts := []listing.FindAllOptionsFunc{}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Collection != nil {
		opts = append(opts, listing.WithCollection(*p.Collection))
	}
	if p.IsAuction != nil {
		opts = append(opts, listing.WithIsAuction(*p.IsAuction))
	}
	if p.Active != nil {
		opts = append(opts, listing.WithActive(*p.Active))
	}
	if p.Offset > 0 || p.Limit > 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}
	return opts
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &findAllParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listings, err := h.listing.FindAll(ctx, p.toOptions()...)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listings)
}

func (h *handler) findBySeller(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := domain.Address(c.Param("address"))

	p := &findAllParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	p.Seller = &seller

	listings, err := h.listing.FindAll(ctx, p.toOptions()...)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listings)
}

func (h *handler) getActiveListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	detail, err := h.listing.GetActiveListing(ctx, id)
	if err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, detail)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	events, err := h.listing.GetEvents(ctx, id)
	if err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, events)
}

func (h *handler) buyItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	type payload struct {
		// Paid is the attached payment amount. Excess above the asking
		// price is not refunded, it enlarges the sale amount and fee base.
		Paid uint64 `json:"paid" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.BuyItem(ctx, id, buyer, p.Paid); err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("address").(domain.Address)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	type payload struct {
		Amount uint64 `json:"amount" validate:"required"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.PlaceBid(ctx, id, bidder, p.Amount); err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// endAuction is deliberately unauthenticated, anyone may finalize an
// auction once the deadline has passed
func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	if err := h.listing.EndAuction(ctx, id); err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancelListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)
	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeErrResp(c, nil, err)
	}

	if err := h.listing.CancelListing(ctx, id, caller); err != nil {
		return delivery.MakeErrResp(c, &id, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
