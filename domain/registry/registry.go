package registry

import (
	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
)

// RoyaltyInfo is an external fact fixed at mint time and owned by the
// registry. The engine reads it for display only, royalty never enters the
// settlement arithmetic.
type RoyaltyInfo struct {
	Creator    domain.Address `json:"creator"`
	RoyaltyBps uint64         `json:"royaltyBps"`
}

// Client is the capability set the engine consumes from the external asset
// registry. Transfer preconditions are re-checked live on the registry side
// at call time, never cached here.
type Client interface {
	OwnerOf(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsTransferApproved(ctx ctx.Ctx, collection, owner, operator domain.Address) (bool, error)
	Transfer(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, from, to domain.Address) error
	RoyaltyInfo(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*RoyaltyInfo, error)
}
