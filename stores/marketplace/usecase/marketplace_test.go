package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/escrow"
	mEscrow "github.com/niftyx/goapi/domain/escrow/mocks"
	"github.com/niftyx/goapi/domain/marketplace"
	mMarketplace "github.com/niftyx/goapi/domain/marketplace/mocks"
	mPayment "github.com/niftyx/goapi/domain/payment/mocks"
)

var (
	mktOwner = domain.Address("0x5555555555555555555555555555555555555555")
	stranger = domain.Address("0x9999999999999999999999999999999999999999")
)

func newTestUseCase() (marketplace.UseCase, *mMarketplace.SettingsRepo, *mEscrow.Repo, *mPayment.Client) {
	settingsRepo := &mMarketplace.SettingsRepo{}
	escrowRepo := &mEscrow.Repo{}
	paymentClient := &mPayment.Client{}
	uc := New(&MarketplaceUseCaseCfg{
		SettingsRepo: settingsRepo,
		EscrowRepo:   escrowRepo,
		Payment:      paymentClient,
	})
	return uc, settingsRepo, escrowRepo, paymentClient
}

func ownerSettings() *marketplace.Settings {
	return &marketplace.Settings{
		SettingsId: marketplace.SettingsId,
		FeeBps:     250,
		Owner:      mktOwner,
	}
}

func TestSetFeeCapAndGating(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	uc, settingsRepo, _, _ := newTestUseCase()

	settingsRepo.On("Get", mock.Anything).Return(ownerSettings(), nil)
	settingsRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	req.ErrorIs(uc.SetFee(c, stranger, 100), domain.ErrNotAuthorized)
	req.ErrorIs(uc.SetFee(c, mktOwner, 1001), domain.ErrFeeTooHigh)
	req.NoError(uc.SetFee(c, mktOwner, 1000))
	req.NoError(uc.SetFee(c, mktOwner, 0))
}

func TestWithdrawFeesSweepsAccruedOnly(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	uc, settingsRepo, escrowRepo, paymentClient := newTestUseCase()

	settingsRepo.On("Get", mock.Anything).Return(ownerSettings(), nil)
	escrowRepo.On("SweepFees", mock.Anything).Return(uint64(12), nil)
	paymentClient.On("Pay", mock.Anything, mktOwner, uint64(12)).Return(nil)

	amount, err := uc.WithdrawFees(c, mktOwner)
	req.NoError(err)
	req.Equal(uint64(12), amount)

	// escrowed bids never leave custody through withdrawal
	escrowRepo.AssertNotCalled(t, "ReleaseBid", mock.Anything, mock.Anything)
}

func TestWithdrawFeesPaymentFailureRestoresBalance(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	uc, settingsRepo, escrowRepo, paymentClient := newTestUseCase()

	settingsRepo.On("Get", mock.Anything).Return(ownerSettings(), nil)
	escrowRepo.On("SweepFees", mock.Anything).Return(uint64(12), nil)
	escrowRepo.On("AccrueFee", mock.Anything, uint64(12)).Return(nil)
	paymentClient.On("Pay", mock.Anything, mktOwner, uint64(12)).Return(domain.ErrPaymentFailed)

	_, err := uc.WithdrawFees(c, mktOwner)
	req.ErrorIs(err, domain.ErrPaymentFailed)

	escrowRepo.AssertCalled(t, "AccrueFee", mock.Anything, uint64(12))
}

func TestGetStatusReportsCustody(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	uc, settingsRepo, escrowRepo, _ := newTestUseCase()

	settingsRepo.On("Get", mock.Anything).Return(ownerSettings(), nil)
	escrowRepo.On("Get", mock.Anything).Return(&escrow.Ledger{
		LedgerId:      escrow.LedgerId,
		EscrowedTotal: 90,
		AccruedFees:   2,
	}, nil)

	status, err := uc.GetStatus(c, mktOwner)
	req.NoError(err)
	req.Equal(uint64(90), status.EscrowedTotal)
	req.Equal(uint64(2), status.AccruedFees)
	req.Equal(uint64(250), status.Settings.FeeBps)

	_, err = uc.GetStatus(c, stranger)
	req.ErrorIs(err, domain.ErrNotAuthorized)
}
