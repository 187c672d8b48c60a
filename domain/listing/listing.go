package listing

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
)

// Asset identifies one non-fungible item tracked by the external registry.
type Asset struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (a Asset) ToLower() Asset {
	return Asset{
		Collection: a.Collection.ToLower(),
		TokenId:    a.TokenId,
	}
}

// Listing is an offer to sell one asset, fixed price or auction.
//
// Active flips true to false exactly once, on the same logical step as the
// settlement's fund and asset movement. HighestBid is monotonically
// non-decreasing and, once nonzero, fully covered by the escrow ledger.
type Listing struct {
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	Asset     `bson:"inline"`
	Seller    domain.Address `json:"seller" bson:"seller"`
	// Price is in the minor currency unit.
	Price     uint64 `json:"price" bson:"price"`
	IsAuction bool   `json:"isAuction" bson:"isAuction"`
	Active    bool   `json:"active" bson:"active"`

	// auction fields, never read on the fixed price path
	AuctionEndTime *time.Time      `json:"auctionEndTime,omitempty" bson:"auctionEndTime,omitempty"`
	HighestBidder  *domain.Address `json:"highestBidder,omitempty" bson:"highestBidder,omitempty"`
	HighestBid     uint64          `json:"highestBid" bson:"highestBid"`

	// bookkeeping, informational only
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
	SoldAt      *time.Time      `json:"soldAt,omitempty" bson:"soldAt,omitempty"`
	SoldTo      *domain.Address `json:"soldTo,omitempty" bson:"soldTo,omitempty"`
	SoldFor     uint64          `json:"soldFor" bson:"soldFor"`
	CancelledAt *time.Time      `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
}

type Patchable struct {
	Active        *bool           `bson:"active,omitempty"`
	HighestBidder *domain.Address `bson:"highestBidder,omitempty"`
	HighestBid    *uint64         `bson:"highestBid,omitempty"`
	UpdatedAt     *time.Time      `bson:"updatedAt,omitempty"`
	SoldAt        *time.Time      `bson:"soldAt,omitempty"`
	SoldTo        *domain.Address `bson:"soldTo,omitempty"`
	SoldFor       *uint64         `bson:"soldFor,omitempty"`
	CancelledAt   *time.Time      `bson:"cancelledAt,omitempty"`
	// ClearBid drops the recorded highest bid. Set when its escrow has
	// already been refunded and the record must not survive.
	ClearBid bool `bson:"-"`
}

type FindAllOptions struct {
	Seller     *domain.Address
	Collection *domain.Address
	IsAuction  *bool
	Active     *bool
	Offset     *int32
	Limit      *int32
	Sort       *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func WithIsAuction(isAuction bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsAuction = &isAuction
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

type Repo interface {
	FindOne(ctx ctx.Ctx, id domain.ListingId) (*Listing, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Create(ctx ctx.Ctx, listing *Listing) error
	Update(ctx ctx.Ctx, id domain.ListingId, patchable Patchable) error
	// NextId allocates a strictly increasing listing id, never reused.
	NextId(ctx ctx.Ctx) (domain.ListingId, error)
}
