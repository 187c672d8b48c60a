package usecase

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
	mEscrow "github.com/niftyx/goapi/domain/escrow/mocks"
	"github.com/niftyx/goapi/domain/listing"
	mListing "github.com/niftyx/goapi/domain/listing/mocks"
	"github.com/niftyx/goapi/domain/marketplace"
	mMarketplace "github.com/niftyx/goapi/domain/marketplace/mocks"
	mPayment "github.com/niftyx/goapi/domain/payment/mocks"
	mRegistry "github.com/niftyx/goapi/domain/registry/mocks"
	"github.com/niftyx/goapi/service/query"
)

// passthroughQuery executes transactional runs directly, the repos under
// them are mocks and carry no session state.
type passthroughQuery struct {
	query.Mongo
}

func (q *passthroughQuery) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	return run(c)
}

var (
	seller     = domain.Address("0x1111111111111111111111111111111111111111")
	buyer      = domain.Address("0x2222222222222222222222222222222222222222")
	bidderA    = domain.Address("0x3333333333333333333333333333333333333333")
	bidderB    = domain.Address("0x4444444444444444444444444444444444444444")
	mktOwner   = domain.Address("0x5555555555555555555555555555555555555555")
	operator   = domain.Address("0x6666666666666666666666666666666666666666")
	collection = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenId    = domain.TokenId("42")
)

type engineMocks struct {
	listings *mListing.Repo
	events   *mListing.EventRepo
	settings *mMarketplace.SettingsRepo
	escrow   *mEscrow.Repo
	registry *mRegistry.Client
	payment  *mPayment.Client
}

func newTestEngine() (*engine, *engineMocks) {
	m := &engineMocks{
		listings: &mListing.Repo{},
		events:   &mListing.EventRepo{},
		settings: &mMarketplace.SettingsRepo{},
		escrow:   &mEscrow.Repo{},
		registry: &mRegistry.Client{},
		payment:  &mPayment.Client{},
	}
	e := New(&EngineCfg{
		ListingRepo:  m.listings,
		EventRepo:    m.events,
		SettingsRepo: m.settings,
		EscrowRepo:   m.escrow,
		Query:        &passthroughQuery{},
		Registry:     m.registry,
		Payment:      m.payment,
		Operator:     operator,
	}).(*engine)
	return e, m
}

func fixedListing(id domain.ListingId, price uint64) *listing.Listing {
	return &listing.Listing{
		ListingId: id,
		Asset:     listing.Asset{Collection: collection, TokenId: tokenId},
		Seller:    seller,
		Price:     price,
		Active:    true,
	}
}

func auctionListing(id domain.ListingId, price uint64, end time.Time) *listing.Listing {
	l := fixedListing(id, price)
	l.IsAuction = true
	l.AuctionEndTime = &end
	return l
}

func settings(feeBps uint64) *marketplace.Settings {
	return &marketplace.Settings{
		SettingsId: marketplace.SettingsId,
		FeeBps:     feeBps,
		Owner:      mktOwner,
	}
}

func flipTo(active bool) interface{} {
	return mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && *p.Active == active
	})
}

func TestListItemAllocatesMonotonicIds(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.registry.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	m.registry.On("IsTransferApproved", mock.Anything, collection, seller, operator).Return(true, nil)
	m.listings.On("NextId", mock.Anything).Return(domain.ListingId(1), nil).Once()
	m.listings.On("NextId", mock.Anything).Return(domain.ListingId(2), nil).Once()
	m.listings.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	id1, err := e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100})
	req.NoError(err)
	id2, err := e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100})
	req.NoError(err)
	req.Greater(uint64(id2), uint64(id1))
}

func TestListItemPreconditionOrder(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	// not the owner
	e, m := newTestEngine()
	m.registry.On("OwnerOf", mock.Anything, collection, tokenId).Return(buyer, nil)
	_, err := e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100})
	req.ErrorIs(err, domain.ErrNotOwner)
	m.listings.AssertNotCalled(t, "NextId", mock.Anything)

	// owner but no approval
	e, m = newTestEngine()
	m.registry.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	m.registry.On("IsTransferApproved", mock.Anything, collection, seller, operator).Return(false, nil)
	_, err = e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100})
	req.ErrorIs(err, domain.ErrNotApproved)

	// zero price rejected even with approval in place
	e, m = newTestEngine()
	m.registry.On("OwnerOf", mock.Anything, collection, tokenId).Return(seller, nil)
	m.registry.On("IsTransferApproved", mock.Anything, collection, seller, operator).Return(true, nil)
	_, err = e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 0})
	req.ErrorIs(err, domain.ErrInvalidPrice)

	// auction needs a positive duration
	_, err = e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100, IsAuction: true})
	req.ErrorIs(err, domain.ErrBadParamInput)

	// unknown asset surfaces as-is
	e, m = newTestEngine()
	m.registry.On("OwnerOf", mock.Anything, collection, tokenId).Return(domain.EmptyAddress, domain.ErrUnknownAsset)
	_, err = e.ListItem(c, listing.ListItemPayload{Seller: seller, Collection: collection, TokenId: tokenId, Price: 100})
	req.ErrorIs(err, domain.ErrUnknownAsset)
}

func TestBuyItemSplitsFeeAndPaysSeller(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.listings.On("FindOne", mock.Anything, domain.ListingId(7)).Return(fixedListing(7, 100), nil)
	m.settings.On("Get", mock.Anything).Return(settings(250), nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(7), mock.Anything).Return(nil)
	m.registry.On("Transfer", mock.Anything, collection, tokenId, seller, buyer).Return(nil)
	m.payment.On("Pay", mock.Anything, seller, uint64(98)).Return(nil)
	m.escrow.On("AccrueFee", mock.Anything, uint64(2)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	req.NoError(e.BuyItem(c, 7, buyer, 100))

	// fee = floor(100*250/10000) = 2, seller gets the remaining 98
	m.payment.AssertCalled(t, "Pay", mock.Anything, seller, uint64(98))
	m.escrow.AssertCalled(t, "AccrueFee", mock.Anything, uint64(2))
	m.registry.AssertCalled(t, "Transfer", mock.Anything, collection, tokenId, seller, buyer)
}

func TestBuyItemPreconditions(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	inactive := fixedListing(1, 100)
	inactive.Active = false
	m.listings.On("FindOne", mock.Anything, domain.ListingId(1)).Return(inactive, nil)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(2)).Return(nil, domain.ErrNotFound)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(3)).Return(auctionListing(3, 100, time.Now().Add(time.Hour)), nil)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(4)).Return(fixedListing(4, 100), nil)

	req.ErrorIs(e.BuyItem(c, 1, buyer, 100), domain.ErrNotActive)
	req.ErrorIs(e.BuyItem(c, 2, buyer, 100), domain.ErrNotActive)
	req.ErrorIs(e.BuyItem(c, 3, buyer, 100), domain.ErrIsAuction)
	req.ErrorIs(e.BuyItem(c, 4, seller, 100), domain.ErrSelfTrade)
	req.ErrorIs(e.BuyItem(c, 4, buyer, 99), domain.ErrInsufficientPayment)

	// no precondition failure may leave a trace
	m.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.payment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
	m.registry.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuyItemTransferFailureRollsBack(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.listings.On("FindOne", mock.Anything, domain.ListingId(7)).Return(fixedListing(7, 100), nil)
	m.settings.On("Get", mock.Anything).Return(settings(250), nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(7), flipTo(false)).Return(nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(7), flipTo(true)).Return(nil)
	m.registry.On("Transfer", mock.Anything, collection, tokenId, seller, buyer).Return(domain.ErrTransferFailed)

	req.ErrorIs(e.BuyItem(c, 7, buyer, 100), domain.ErrTransferFailed)

	m.listings.AssertCalled(t, "Update", mock.Anything, domain.ListingId(7), flipTo(true))
	m.payment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
	m.escrow.AssertNotCalled(t, "AccrueFee", mock.Anything, mock.Anything)
	m.events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBuyItemPaymentFailureRollsBack(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.listings.On("FindOne", mock.Anything, domain.ListingId(7)).Return(fixedListing(7, 100), nil)
	m.settings.On("Get", mock.Anything).Return(settings(250), nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(7), flipTo(false)).Return(nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(7), flipTo(true)).Return(nil)
	m.registry.On("Transfer", mock.Anything, collection, tokenId, seller, buyer).Return(nil)
	m.registry.On("Transfer", mock.Anything, collection, tokenId, buyer, seller).Return(nil)
	m.escrow.On("AccrueFee", mock.Anything, uint64(2)).Return(nil)
	m.escrow.On("RevertFee", mock.Anything, uint64(2)).Return(nil)
	m.payment.On("Pay", mock.Anything, seller, uint64(98)).Return(domain.ErrPaymentFailed)

	req.ErrorIs(e.BuyItem(c, 7, buyer, 100), domain.ErrPaymentFailed)

	// the accrued fee is reverted, the committed transfer compensated and
	// the flip rolled back
	m.escrow.AssertCalled(t, "RevertFee", mock.Anything, uint64(2))
	m.registry.AssertCalled(t, "Transfer", mock.Anything, collection, tokenId, buyer, seller)
	m.listings.AssertCalled(t, "Update", mock.Anything, domain.ListingId(7), flipTo(true))
	m.events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPlaceBidRefundsPreviousBidderInFull(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(time.Hour))
	l.HighestBidder = &bidderA
	l.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.payment.On("Pay", mock.Anything, bidderA, uint64(60)).Return(nil)
	m.escrow.On("ReleaseBid", mock.Anything, uint64(60)).Return(nil)
	m.escrow.On("DepositBid", mock.Anything, uint64(90)).Return(nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(9), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.HighestBid != nil && *p.HighestBid == 90 && p.HighestBidder != nil && *p.HighestBidder == bidderB
	})).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	req.NoError(e.PlaceBid(c, 9, bidderB, 90))

	m.payment.AssertCalled(t, "Pay", mock.Anything, bidderA, uint64(60))
}

func TestPlaceBidRejectsTiesAndMisuse(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(time.Hour))
	l.HighestBidder = &bidderA
	l.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(10)).Return(fixedListing(10, 50), nil)

	ended := auctionListing(11, 50, time.Now().Add(-time.Minute))
	m.listings.On("FindOne", mock.Anything, domain.ListingId(11)).Return(ended, nil)

	// an equal bid is a tie and ties are rejected
	req.ErrorIs(e.PlaceBid(c, 9, bidderB, 60), domain.ErrBidTooLow)
	req.ErrorIs(e.PlaceBid(c, 9, bidderB, 59), domain.ErrBidTooLow)
	req.ErrorIs(e.PlaceBid(c, 9, seller, 70), domain.ErrSelfBid)
	req.ErrorIs(e.PlaceBid(c, 10, bidderB, 70), domain.ErrNotAuction)
	req.ErrorIs(e.PlaceBid(c, 11, bidderB, 70), domain.ErrAuctionEndedAlready)

	// every rejected bid leaves highestBid/highestBidder untouched
	m.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.payment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
	m.escrow.AssertNotCalled(t, "DepositBid", mock.Anything, mock.Anything)
}

func TestPlaceBidRefundFailureAbortsWithNoStateChange(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(time.Hour))
	l.HighestBidder = &bidderA
	l.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.payment.On("Pay", mock.Anything, bidderA, uint64(60)).Return(domain.ErrPaymentFailed)

	req.ErrorIs(e.PlaceBid(c, 9, bidderB, 90), domain.ErrPaymentFailed)

	m.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.escrow.AssertNotCalled(t, "DepositBid", mock.Anything, mock.Anything)
	m.escrow.AssertNotCalled(t, "ReleaseBid", mock.Anything, mock.Anything)
}

func TestPlaceBidRecordFailureClearsRefundedBid(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	end := time.Now().Add(time.Hour)
	withBid := auctionListing(9, 50, end)
	withBid.HighestBidder = &bidderA
	withBid.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(withBid, nil).Once()
	// after the failed attempt the bid record has been cleared
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(auctionListing(9, 50, end), nil).Once()

	m.payment.On("Pay", mock.Anything, bidderA, uint64(60)).Return(nil)
	m.escrow.On("ReleaseBid", mock.Anything, uint64(60)).Return(nil)
	m.escrow.On("DepositBid", mock.Anything, uint64(90)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	newBid := mock.MatchedBy(func(p listing.Patchable) bool {
		return p.HighestBid != nil && *p.HighestBid == 90
	})
	clearBid := mock.MatchedBy(func(p listing.Patchable) bool {
		return p.ClearBid
	})
	recordErr := errors.New("write failed")
	m.listings.On("Update", mock.Anything, domain.ListingId(9), newBid).Return(recordErr).Once()
	m.listings.On("Update", mock.Anything, domain.ListingId(9), clearBid).Return(nil).Once()
	m.listings.On("Update", mock.Anything, domain.ListingId(9), newBid).Return(nil).Once()

	// recording fails after the refund was paid, the stale record is cleared
	req.ErrorIs(e.PlaceBid(c, 9, bidderB, 90), recordErr)
	m.listings.AssertCalled(t, "Update", mock.Anything, domain.ListingId(9), clearBid)

	// re-bidding against the cleared listing must not refund bidderA again
	req.NoError(e.PlaceBid(c, 9, bidderB, 90))
	m.payment.AssertNumberOfCalls(t, "Pay", 1)
}

func TestCancelDeactivateFailureClearsRefundedBid(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(time.Hour))
	l.HighestBidder = &bidderA
	l.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.payment.On("Pay", mock.Anything, bidderA, uint64(60)).Return(nil)
	m.escrow.On("ReleaseBid", mock.Anything, uint64(60)).Return(nil)

	clearBid := mock.MatchedBy(func(p listing.Patchable) bool {
		return p.ClearBid
	})
	deactivateErr := errors.New("write failed")
	m.listings.On("Update", mock.Anything, domain.ListingId(9), flipTo(false)).Return(deactivateErr).Once()
	m.listings.On("Update", mock.Anything, domain.ListingId(9), clearBid).Return(nil).Once()

	req.ErrorIs(e.CancelListing(c, 9, seller), deactivateErr)

	// the refunded bid may not survive, a later cancel or bid would pay
	// the refund a second time
	m.listings.AssertCalled(t, "Update", mock.Anything, domain.ListingId(9), clearBid)
	m.payment.AssertNumberOfCalls(t, "Pay", 1)
	m.events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestEndAuctionSettlesWinner(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	// start=50, winning bid=90, feeBps=250 -> fee=2, seller gets 88
	l := auctionListing(9, 50, time.Now().Add(-time.Minute))
	l.HighestBidder = &bidderB
	l.HighestBid = 90
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.settings.On("Get", mock.Anything).Return(settings(250), nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(9), mock.Anything).Return(nil)
	m.registry.On("Transfer", mock.Anything, collection, tokenId, seller, bidderB).Return(nil)
	m.payment.On("Pay", mock.Anything, seller, uint64(88)).Return(nil)
	m.escrow.On("AccrueFee", mock.Anything, uint64(2)).Return(nil)
	m.escrow.On("ReleaseBid", mock.Anything, uint64(90)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	req.NoError(e.EndAuction(c, 9))

	m.payment.AssertCalled(t, "Pay", mock.Anything, seller, uint64(88))
	m.escrow.AssertCalled(t, "AccrueFee", mock.Anything, uint64(2))
	m.escrow.AssertCalled(t, "ReleaseBid", mock.Anything, uint64(90))
	m.registry.AssertCalled(t, "Transfer", mock.Anything, collection, tokenId, seller, bidderB)
}

func TestEndAuctionNoBidsMovesNothing(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(-time.Minute))
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(9), flipTo(false)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.MatchedBy(func(ev *listing.Event) bool {
		return ev.Type == listing.EventTypeAuctionEnded && ev.Amount == 0 && ev.Account == nil
	})).Return(nil)

	req.NoError(e.EndAuction(c, 9))

	m.registry.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.payment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
}

func TestEndAuctionTiming(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	running := auctionListing(9, 50, time.Now().Add(time.Hour))
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(running, nil)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(10)).Return(fixedListing(10, 50), nil)

	settled := auctionListing(11, 50, time.Now().Add(-time.Minute))
	settled.Active = false
	m.listings.On("FindOne", mock.Anything, domain.ListingId(11)).Return(settled, nil)

	req.ErrorIs(e.EndAuction(c, 9), domain.ErrAuctionStillActive)
	req.ErrorIs(e.EndAuction(c, 10), domain.ErrNotAuction)
	// active flips at most once, a settled auction only reports NotActive
	req.ErrorIs(e.EndAuction(c, 11), domain.ErrNotActive)
}

func TestCancelListingRefundsStandingBid(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	l := auctionListing(9, 50, time.Now().Add(time.Hour))
	l.HighestBidder = &bidderA
	l.HighestBid = 60
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(l, nil)
	m.payment.On("Pay", mock.Anything, bidderA, uint64(60)).Return(nil)
	m.escrow.On("ReleaseBid", mock.Anything, uint64(60)).Return(nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(9), flipTo(false)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	req.NoError(e.CancelListing(c, 9, seller))

	m.payment.AssertCalled(t, "Pay", mock.Anything, bidderA, uint64(60))
	// no asset transfer on cancel, the seller retains the asset
	m.registry.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelListingAuthorization(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(fixedListing(9, 100), nil)
	m.settings.On("Get", mock.Anything).Return(settings(250), nil)
	m.listings.On("Update", mock.Anything, domain.ListingId(9), flipTo(false)).Return(nil)
	m.events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// a third party may not cancel
	req.ErrorIs(e.CancelListing(c, 9, buyer), domain.ErrNotAuthorized)
	m.listings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	// the marketplace owner may
	req.NoError(e.CancelListing(c, 9, mktOwner))
}

func TestGetActiveListingRefusesTerminated(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	terminated := fixedListing(9, 100)
	terminated.Active = false
	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(terminated, nil)
	m.listings.On("FindOne", mock.Anything, domain.ListingId(10)).Return(nil, domain.ErrNotFound)

	_, err := e.GetActiveListing(c, 9)
	req.ErrorIs(err, domain.ErrNotActive)
	_, err = e.GetActiveListing(c, 10)
	req.ErrorIs(err, domain.ErrNotActive)
}

func TestGetActiveListingAttachesRoyaltyAndDisplayPrice(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	m.listings.On("FindOne", mock.Anything, domain.ListingId(9)).Return(fixedListing(9, 12345), nil)
	m.registry.On("RoyaltyInfo", mock.Anything, collection, tokenId).Return(nil, nil)

	detail, err := e.GetActiveListing(c, 9)
	req.NoError(err)
	req.Equal("123.45", detail.DisplayPrice)
	req.Nil(detail.Royalty)
}

func TestFindAllForwardsFilters(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	e, m := newTestEngine()

	expected := []*listing.Listing{fixedListing(1, 100), fixedListing(2, 200)}
	m.listings.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(expected, nil)

	got, err := e.FindAll(c, listing.WithSeller(seller), listing.WithActive(true))
	req.NoError(err)
	req.Equal(expected, got)
	m.listings.AssertExpectations(t)
}

func TestSplitFeeNeverDrifts(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		amount, feeBps, fee, seller uint64
	}{
		{100, 250, 2, 98},
		{90, 250, 2, 88},
		{100, 0, 0, 100},
		{1, 1000, 0, 1},
		{10000, 1000, 1000, 9000},
		// amounts where amount*feeBps exceeds uint64
		{20000000000000000, 250, 500000000000000, 19500000000000000},
		{math.MaxUint64, 1000, 1844674407370955161, 16602069666338596454},
	}
	for _, tc := range cases {
		fee, sellerAmount := marketplace.SplitFee(tc.amount, tc.feeBps)
		req.Equal(tc.fee, fee)
		req.Equal(tc.seller, sellerAmount)
		req.Equal(tc.amount, fee+sellerAmount)
	}
}
