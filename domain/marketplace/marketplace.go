package marketplace

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
)

// MaxFeeBps caps the marketplace fee at 10%.
const MaxFeeBps = 1000

// settingsId of the process wide singleton document.
const SettingsId = "default"

// Settings is the process wide marketplace configuration. The fee is
// applied at settlement time with the then-current rate, not the rate at
// listing or bid time.
type Settings struct {
	SettingsId string         `json:"-" bson:"settingsId"`
	FeeBps     uint64         `json:"feeBps" bson:"feeBps"`
	Owner      domain.Address `json:"owner" bson:"owner"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type SettingsPatchable struct {
	FeeBps    *uint64    `bson:"feeBps,omitempty"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
}

// SplitFee computes the marketplace cut with integer division truncating
// toward zero. fee + sellerAmount == amount always holds. The split is
// computed without the amount*feeBps intermediate, which overflows uint64
// for large amounts.
func SplitFee(amount, feeBps uint64) (fee, sellerAmount uint64) {
	fee = amount/domain.BpsDenominator*feeBps + amount%domain.BpsDenominator*feeBps/domain.BpsDenominator
	return fee, amount - fee
}

type SettingsRepo interface {
	Get(ctx ctx.Ctx) (*Settings, error)
	Update(ctx ctx.Ctx, patchable SettingsPatchable) error
	// EnsureDefault creates the singleton settings document if missing.
	EnsureDefault(ctx ctx.Ctx, owner domain.Address, feeBps uint64) error
}

// Status is the administrative view over settings and fund custody.
type Status struct {
	Settings      *Settings `json:"settings"`
	EscrowedTotal uint64    `json:"escrowedTotal"`
	AccruedFees   uint64    `json:"accruedFees"`
}

type UseCase interface {
	GetStatus(ctx ctx.Ctx, caller domain.Address) (*Status, error)
	SetFee(ctx ctx.Ctx, caller domain.Address, feeBps uint64) error
	// WithdrawFees sweeps accrued fees, and only accrued fees, to the
	// marketplace owner. Escrowed bids are never swept.
	WithdrawFees(ctx ctx.Ctx, caller domain.Address) (uint64, error)
}
