package escrow

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
)

// ledgerId of the process wide singleton document.
const LedgerId = "default"

// Ledger makes engine custody explicit: total custody equals the sum of
// all active highest bids plus accumulated unclaimed fees. Fee withdrawal
// sweeps AccruedFees only, never EscrowedTotal.
type Ledger struct {
	LedgerId      string    `json:"-" bson:"ledgerId"`
	EscrowedTotal uint64    `json:"escrowedTotal" bson:"escrowedTotal"`
	AccruedFees   uint64    `json:"accruedFees" bson:"accruedFees"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Repo interface {
	Get(ctx ctx.Ctx) (*Ledger, error)
	// DepositBid adds a newly accepted bid to escrow.
	DepositBid(ctx ctx.Ctx, amount uint64) error
	// ReleaseBid removes a refunded or settled bid from escrow.
	ReleaseBid(ctx ctx.Ctx, amount uint64) error
	// AccrueFee adds a settlement fee to the withdrawable balance.
	AccrueFee(ctx ctx.Ctx, amount uint64) error
	// RevertFee backs an accrual out again when a settlement rolls back.
	RevertFee(ctx ctx.Ctx, amount uint64) error
	// SweepFees zeroes the accrued fee balance and reports the swept amount.
	SweepFees(ctx ctx.Ctx) (uint64, error)
}
