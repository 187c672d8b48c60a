package listing

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/registry"
)

type ListItemPayload struct {
	Seller     domain.Address
	Collection domain.Address
	TokenId    domain.TokenId
	// Price is in the minor currency unit, must be greater than zero.
	Price     uint64
	IsAuction bool
	// Duration is only read for auctions. The end time is fixed at listing
	// time and never extended.
	Duration time.Duration
}

// Detail is the query surface view of an active listing, enriched with the
// informational royalty fact from the registry.
type Detail struct {
	Listing
	Royalty *registry.RoyaltyInfo `json:"royalty,omitempty"`
	// DisplayPrice renders the minor unit price as a decimal string.
	DisplayPrice string `json:"displayPrice"`
}

// UseCase is the settlement engine. Every operation executes as one
// indivisible unit per listing: two concurrent calls against the same
// listing id cannot both observe Active true, and a failed external call
// rolls back any tentative state change made in the same operation.
type UseCase interface {
	ListItem(ctx ctx.Ctx, payload ListItemPayload) (domain.ListingId, error)
	BuyItem(ctx ctx.Ctx, id domain.ListingId, buyer domain.Address, paid uint64) error
	PlaceBid(ctx ctx.Ctx, id domain.ListingId, bidder domain.Address, amount uint64) error
	// EndAuction is callable by anyone once the deadline has passed.
	EndAuction(ctx ctx.Ctx, id domain.ListingId) error
	CancelListing(ctx ctx.Ctx, id domain.ListingId, caller domain.Address) error
	// GetActiveListing refuses terminated listings with ErrNotActive.
	GetActiveListing(ctx ctx.Ctx, id domain.ListingId) (*Detail, error)
	GetEvents(ctx ctx.Ctx, id domain.ListingId) ([]*Event, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
