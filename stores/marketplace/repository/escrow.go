package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/escrow"
	"github.com/niftyx/goapi/service/query"
)

type escrowImpl struct {
	query query.Mongo
}

// NewEscrow creates new escrow ledger repo
func NewEscrow(query query.Mongo) escrow.Repo {
	return &escrowImpl{query: query}
}

func (im *escrowImpl) Get(c ctx.Ctx) (*escrow.Ledger, error) {
	res := &escrow.Ledger{}
	err := im.query.FindOne(c, domain.TableEscrowLedgers, bson.M{"ledgerId": escrow.LedgerId}, res)
	if err == query.ErrNotFound {
		return &escrow.Ledger{LedgerId: escrow.LedgerId}, nil
	} else if err != nil {
		c.WithField("err", err).Error("find escrow ledger failed")
		return nil, err
	}
	return res, nil
}

func (im *escrowImpl) DepositBid(c ctx.Ctx, amount uint64) error {
	return im.adjust(c, bson.M{"escrowedTotal": int64(amount)})
}

func (im *escrowImpl) ReleaseBid(c ctx.Ctx, amount uint64) error {
	return im.adjust(c, bson.M{"escrowedTotal": -int64(amount)})
}

func (im *escrowImpl) AccrueFee(c ctx.Ctx, amount uint64) error {
	return im.adjust(c, bson.M{"accruedFees": int64(amount)})
}

func (im *escrowImpl) RevertFee(c ctx.Ctx, amount uint64) error {
	return im.adjust(c, bson.M{"accruedFees": -int64(amount)})
}

func (im *escrowImpl) SweepFees(c ctx.Ctx) (uint64, error) {
	ledger, err := im.Get(c)
	if err != nil {
		return 0, err
	}
	if ledger.AccruedFees == 0 {
		return 0, nil
	}

	// Decrement by the observed balance instead of zeroing, fees accrued
	// after the read stay on the ledger for the next sweep.
	if err := im.adjust(c, bson.M{"accruedFees": -int64(ledger.AccruedFees)}); err != nil {
		return 0, err
	}
	return ledger.AccruedFees, nil
}

func (im *escrowImpl) adjust(c ctx.Ctx, fieldAndValues bson.M) error {
	res := &escrow.Ledger{}
	if err := im.query.IncrementMany(c, domain.TableEscrowLedgers, bson.M{"ledgerId": escrow.LedgerId}, fieldAndValues, nil, res); err != nil {
		c.WithField("err", err).Error("adjust escrow ledger failed")
		return err
	}
	return nil
}
