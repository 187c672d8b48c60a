package usecase

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/base/metrics"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/escrow"
	"github.com/niftyx/goapi/domain/marketplace"
	"github.com/niftyx/goapi/domain/payment"
)

type MarketplaceUseCaseCfg struct {
	SettingsRepo marketplace.SettingsRepo
	EscrowRepo   escrow.Repo
	Payment      payment.Client
}

type impl struct {
	settings marketplace.SettingsRepo
	escrow   escrow.Repo
	payment  payment.Client
	met      metrics.Service
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	return &impl{
		settings: cfg.SettingsRepo,
		escrow:   cfg.EscrowRepo,
		payment:  cfg.Payment,
		met:      metrics.New("marketplace"),
	}
}

func (im *impl) GetStatus(c ctx.Ctx, caller domain.Address) (*marketplace.Status, error) {
	settings, err := im.requireOwner(c, caller)
	if err != nil {
		return nil, err
	}

	ledger, err := im.escrow.Get(c)
	if err != nil {
		return nil, err
	}

	return &marketplace.Status{
		Settings:      settings,
		EscrowedTotal: ledger.EscrowedTotal,
		AccruedFees:   ledger.AccruedFees,
	}, nil
}

func (im *impl) SetFee(c ctx.Ctx, caller domain.Address, feeBps uint64) error {
	if _, err := im.requireOwner(c, caller); err != nil {
		return err
	}
	if feeBps > marketplace.MaxFeeBps {
		return domain.ErrFeeTooHigh
	}

	now := time.Now()
	if err := im.settings.Update(c, marketplace.SettingsPatchable{
		FeeBps:    &feeBps,
		UpdatedAt: &now,
	}); err != nil {
		return err
	}

	// takes effect for all settlements from this point forward
	im.met.BumpSum("fee.updated", 1)
	return nil
}

func (im *impl) WithdrawFees(c ctx.Ctx, caller domain.Address) (uint64, error) {
	settings, err := im.requireOwner(c, caller)
	if err != nil {
		return 0, err
	}

	// Only the accrued fee balance is swept. Funds escrowed for standing
	// auction bids never leave custody here.
	amount, err := im.escrow.SweepFees(c)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	if err := im.payment.Pay(c, settings.Owner, amount); err != nil {
		c.WithFields(log.Fields{
			"owner":  settings.Owner,
			"amount": amount,
			"err":    err,
		}).Error("fee payout failed, restoring balance")
		if aerr := im.escrow.AccrueFee(c, amount); aerr != nil {
			c.WithField("err", aerr).Error("restoring swept fees failed")
		}
		return 0, domain.ErrPaymentFailed
	}

	im.met.BumpSum("fee.withdrawn", 1)
	return amount, nil
}

func (im *impl) requireOwner(c ctx.Ctx, caller domain.Address) (*marketplace.Settings, error) {
	settings, err := im.settings.Get(c)
	if err != nil {
		return nil, err
	}
	if !caller.Equals(settings.Owner) {
		return nil, domain.ErrNotAuthorized
	}
	return settings, nil
}
