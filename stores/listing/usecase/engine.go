package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/base/metrics"
	"github.com/niftyx/goapi/base/ptr"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/escrow"
	"github.com/niftyx/goapi/domain/keys"
	"github.com/niftyx/goapi/domain/listing"
	"github.com/niftyx/goapi/domain/marketplace"
	"github.com/niftyx/goapi/domain/payment"
	"github.com/niftyx/goapi/domain/registry"
	"github.com/niftyx/goapi/service/cache"
	"github.com/niftyx/goapi/service/cache/provider/primitive"
	"github.com/niftyx/goapi/service/query"
)

// priceDecimals is the minor unit scale used for display formatting only.
const priceDecimals = 2

var timeNow = time.Now

type EngineCfg struct {
	ListingRepo  listing.Repo
	EventRepo    listing.EventRepo
	SettingsRepo marketplace.SettingsRepo
	EscrowRepo   escrow.Repo
	// Query runs the multi-document writes of one operation as a single
	// transaction.
	Query    query.Mongo
	Registry registry.Client
	Payment  payment.Client
	// Operator is the engine identity the seller grants transfer approval to.
	Operator domain.Address
	// Cache is optional, GetActiveListing falls back to an in-process cache.
	Cache cache.Service
}

type engine struct {
	listings listing.Repo
	events   listing.EventRepo
	settings marketplace.SettingsRepo
	escrow   escrow.Repo
	query    query.Mongo
	registry registry.Client
	payment  payment.Client
	operator domain.Address

	listingCache cache.Service
	met          metrics.Service

	// per-listing mutexes, operations against distinct listings never
	// serialize against each other
	locksMu sync.Mutex
	locks   map[domain.ListingId]*sync.Mutex
}

func New(cfg *EngineCfg) listing.UseCase {
	listingCache := cfg.Cache
	if listingCache == nil {
		listingCache = cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxActiveListing,
			Cache: primitive.NewPrimitive(keys.PfxActiveListing, 64),
		})
	}
	return &engine{
		listings:     cfg.ListingRepo,
		events:       cfg.EventRepo,
		settings:     cfg.SettingsRepo,
		escrow:       cfg.EscrowRepo,
		query:        cfg.Query,
		registry:     cfg.Registry,
		payment:      cfg.Payment,
		operator:     cfg.Operator.ToLower(),
		listingCache: listingCache,
		met:          metrics.New("listing"),
		locks:        map[domain.ListingId]*sync.Mutex{},
	}
}

// lock serializes all state transitions of one listing id. Reentrancy into
// the same listing observes the already flipped active flag, not a half
// applied settlement.
func (e *engine) lock(id domain.ListingId) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	if mu, ok := e.locks[id]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	e.locks[id] = mu
	return mu
}

func (e *engine) ListItem(c ctx.Ctx, payload listing.ListItemPayload) (domain.ListingId, error) {
	seller := payload.Seller.ToLower()
	collection := payload.Collection.ToLower()

	owner, err := e.registry.OwnerOf(c, collection, payload.TokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"collection": collection,
			"tokenId":    payload.TokenId,
			"err":        err,
		}).Error("registry.OwnerOf failed")
		return 0, err
	}
	if !owner.Equals(seller) {
		return 0, domain.ErrNotOwner
	}

	approved, err := e.registry.IsTransferApproved(c, collection, seller, e.operator)
	if err != nil {
		c.WithField("err", err).Error("registry.IsTransferApproved failed")
		return 0, err
	}
	if !approved {
		return 0, domain.ErrNotApproved
	}

	if payload.Price == 0 {
		return 0, domain.ErrInvalidPrice
	}
	if payload.IsAuction && payload.Duration <= 0 {
		return 0, domain.ErrBadParamInput
	}

	id, err := e.listings.NextId(c)
	if err != nil {
		return 0, err
	}

	now := timeNow()
	l := &listing.Listing{
		ListingId: id,
		Asset: listing.Asset{
			Collection: collection,
			TokenId:    payload.TokenId,
		},
		Seller:    seller,
		Price:     payload.Price,
		IsAuction: payload.IsAuction,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if payload.IsAuction {
		end := now.Add(payload.Duration)
		l.AuctionEndTime = &end
	}

	if err := e.listings.Create(c, l); err != nil {
		return 0, err
	}

	e.met.BumpSum("listed", 1, "isAuction", fmt.Sprintf("%t", payload.IsAuction))
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeListed,
		Asset:     l.Asset,
		Amount:    payload.Price,
	})
	return id, nil
}

func (e *engine) BuyItem(c ctx.Ctx, id domain.ListingId, buyer domain.Address, paid uint64) error {
	mu := e.lock(id)
	mu.Lock()
	defer mu.Unlock()

	buyer = buyer.ToLower()

	l, err := e.findActive(c, id)
	if err != nil {
		return err
	}
	if l.IsAuction {
		return domain.ErrIsAuction
	}
	if buyer.Equals(l.Seller) {
		return domain.ErrSelfTrade
	}
	if paid < l.Price {
		return domain.ErrInsufficientPayment
	}

	settings, err := e.settings.Get(c)
	if err != nil {
		return err
	}

	// The full paid amount is the sale amount and fee base, excess is not
	// refunded. Callers are warned in the interface contract.
	fee, sellerAmount := marketplace.SplitFee(paid, settings.FeeBps)

	if err := e.settle(c, l, buyer, paid, fee, sellerAmount); err != nil {
		return err
	}

	e.met.BumpSum("sold", 1, "path", "buy")
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeSold,
		Asset:     l.Asset,
		Account:   &buyer,
		Amount:    paid,
	})
	return nil
}

func (e *engine) PlaceBid(c ctx.Ctx, id domain.ListingId, bidder domain.Address, amount uint64) error {
	mu := e.lock(id)
	mu.Lock()
	defer mu.Unlock()

	bidder = bidder.ToLower()

	l, err := e.findActive(c, id)
	if err != nil {
		return err
	}
	if !l.IsAuction {
		return domain.ErrNotAuction
	}
	if bidder.Equals(l.Seller) {
		return domain.ErrSelfBid
	}
	if l.AuctionEndTime != nil && !timeNow().Before(*l.AuctionEndTime) {
		return domain.ErrAuctionEndedAlready
	}
	// ties are rejected, no increment minimum beyond strictly greater
	if amount <= l.HighestBid {
		return domain.ErrBidTooLow
	}

	prevBidder := l.HighestBidder
	prevBid := l.HighestBid

	// Refund the outbid participant in full before recording anything. A
	// refund failure aborts the bid with no state change.
	if prevBidder != nil {
		if err := e.payment.Pay(c, *prevBidder, prevBid); err != nil {
			c.WithFields(log.Fields{
				"listingId": id,
				"bidder":    *prevBidder,
				"amount":    prevBid,
				"err":       err,
			}).Error("refund of outbid participant failed")
			return domain.ErrPaymentFailed
		}
	}

	// The ledger adjustments and the bid record land together or not at
	// all, a partial write must not survive the operation.
	now := timeNow()
	record := func(c ctx.Ctx) error {
		if prevBidder != nil {
			if err := e.escrow.ReleaseBid(c, prevBid); err != nil {
				return err
			}
		}
		if err := e.escrow.DepositBid(c, amount); err != nil {
			return err
		}
		return e.listings.Update(c, id, listing.Patchable{
			HighestBidder: &bidder,
			HighestBid:    &amount,
			UpdatedAt:     &now,
		})
	}
	if err := e.query.RunWithTransaction(c, record); err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("recording bid failed")
		// the refund has already been paid out, the stale record would
		// refund it a second time on the next accepted bid or cancel
		if prevBidder != nil {
			e.clearRefundedBid(c, id, prevBid)
		}
		return err
	}

	e.invalidate(c, id)
	e.met.BumpSum("bidPlaced", 1)
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeBidPlaced,
		Asset:     l.Asset,
		Account:   &bidder,
		Amount:    amount,
	})
	return nil
}

func (e *engine) EndAuction(c ctx.Ctx, id domain.ListingId) error {
	mu := e.lock(id)
	mu.Lock()
	defer mu.Unlock()

	l, err := e.findActive(c, id)
	if err != nil {
		return err
	}
	if !l.IsAuction {
		return domain.ErrNotAuction
	}
	if l.AuctionEndTime != nil && timeNow().Before(*l.AuctionEndTime) {
		return domain.ErrAuctionStillActive
	}

	if l.HighestBidder == nil {
		// no bids, seller keeps the asset and no funds move
		now := timeNow()
		if err := e.listings.Update(c, id, listing.Patchable{
			Active:    ptr.Bool(false),
			UpdatedAt: &now,
		}); err != nil {
			return err
		}
		e.invalidate(c, id)
		e.met.BumpSum("auctionEnded", 1, "settled", "false")
		e.emit(c, &listing.Event{
			ListingId: id,
			Type:      listing.EventTypeAuctionEnded,
			Asset:     l.Asset,
			Amount:    0,
		})
		return nil
	}

	winner := *l.HighestBidder
	winningBid := l.HighestBid

	settings, err := e.settings.Get(c)
	if err != nil {
		return err
	}

	// fee is determined at settlement time with the then-current rate
	fee, sellerAmount := marketplace.SplitFee(winningBid, settings.FeeBps)

	if err := e.settle(c, l, winner, winningBid, fee, sellerAmount); err != nil {
		return err
	}

	// the winning bid leaves bid escrow, the fee share stays as accrued fees
	if err := e.escrow.ReleaseBid(c, winningBid); err != nil {
		c.WithField("err", err).Error("escrow.ReleaseBid failed after settlement")
	}

	e.met.BumpSum("sold", 1, "path", "auction")
	e.met.BumpSum("auctionEnded", 1, "settled", "true")
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeSold,
		Asset:     l.Asset,
		Account:   &winner,
		Amount:    winningBid,
	})
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeAuctionEnded,
		Asset:     l.Asset,
		Account:   &winner,
		Amount:    winningBid,
	})
	return nil
}

func (e *engine) CancelListing(c ctx.Ctx, id domain.ListingId, caller domain.Address) error {
	mu := e.lock(id)
	mu.Lock()
	defer mu.Unlock()

	caller = caller.ToLower()

	l, err := e.findActive(c, id)
	if err != nil {
		return err
	}

	if !caller.Equals(l.Seller) {
		settings, err := e.settings.Get(c)
		if err != nil {
			return err
		}
		if !caller.Equals(settings.Owner) {
			return domain.ErrNotAuthorized
		}
	}

	// refund the standing bid in full before deactivating
	refunded := uint64(0)
	if l.IsAuction && l.HighestBidder != nil {
		if err := e.payment.Pay(c, *l.HighestBidder, l.HighestBid); err != nil {
			c.WithFields(log.Fields{
				"listingId": id,
				"bidder":    *l.HighestBidder,
				"amount":    l.HighestBid,
				"err":       err,
			}).Error("refund on cancel failed")
			return domain.ErrPaymentFailed
		}
		refunded = l.HighestBid
	}

	now := timeNow()
	deactivate := func(c ctx.Ctx) error {
		if refunded > 0 {
			if err := e.escrow.ReleaseBid(c, refunded); err != nil {
				return err
			}
		}
		return e.listings.Update(c, id, listing.Patchable{
			Active:      ptr.Bool(false),
			CancelledAt: &now,
			UpdatedAt:   &now,
		})
	}
	if err := e.query.RunWithTransaction(c, deactivate); err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("deactivating listing failed")
		if refunded > 0 {
			e.clearRefundedBid(c, id, refunded)
		}
		return err
	}

	e.invalidate(c, id)
	e.met.BumpSum("cancelled", 1)
	e.emit(c, &listing.Event{
		ListingId: id,
		Type:      listing.EventTypeCancelled,
		Asset:     l.Asset,
	})
	return nil
}

func (e *engine) GetActiveListing(c ctx.Ctx, id domain.ListingId) (*listing.Detail, error) {
	res := &listing.Detail{}
	key := fmt.Sprintf("%d", id)
	if err := e.listingCache.GetByFunc(c, key, res, func() (interface{}, error) {
		return e.getActiveListing(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *engine) getActiveListing(c ctx.Ctx, id domain.ListingId) (*listing.Detail, error) {
	l, err := e.findActive(c, id)
	if err != nil {
		return nil, err
	}

	detail := &listing.Detail{
		Listing:      *l,
		DisplayPrice: decimal.New(int64(l.Price), -priceDecimals).String(),
	}

	// royalty is informational, it never enters settlement arithmetic
	if royalty, err := e.registry.RoyaltyInfo(c, l.Collection, l.TokenId); err != nil {
		c.WithFields(log.Fields{
			"collection": l.Collection,
			"tokenId":    l.TokenId,
			"err":        err,
		}).Warn("registry.RoyaltyInfo failed")
	} else {
		detail.Royalty = royalty
	}
	return detail, nil
}

func (e *engine) GetEvents(c ctx.Ctx, id domain.ListingId) ([]*listing.Event, error) {
	return e.events.FindAll(c, listing.EventWithListingId(id))
}

func (e *engine) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return e.listings.FindAll(c, opts...)
}

// findActive loads a listing and refuses terminated or unknown listings.
func (e *engine) findActive(c ctx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	l, err := e.listings.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotActive
	} else if err != nil {
		return nil, err
	}
	if !l.Active {
		return nil, domain.ErrNotActive
	}
	return l, nil
}

// settle flips the active flag, moves the asset and pays the seller as one
// all-or-nothing unit. The flip lands before any external call so recursive
// re-entry against this listing is rejected with NotActive, and both
// external failures roll the flip back inside the same operation.
func (e *engine) settle(c ctx.Ctx, l *listing.Listing, buyer domain.Address, amount, fee, sellerAmount uint64) error {
	now := timeNow()
	if err := e.listings.Update(c, l.ListingId, listing.Patchable{
		Active:    ptr.Bool(false),
		UpdatedAt: &now,
	}); err != nil {
		return err
	}
	e.invalidate(c, l.ListingId)

	if err := e.registry.Transfer(c, l.Collection, l.TokenId, l.Seller, buyer); err != nil {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("asset transfer failed, rolling back")
		e.rollbackFlip(c, l.ListingId)
		return domain.ErrTransferFailed
	}

	if err := e.escrow.AccrueFee(c, fee); err != nil {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("escrow.AccrueFee failed, rolling back")
		e.compensateTransfer(c, l, buyer)
		e.rollbackFlip(c, l.ListingId)
		return err
	}

	if err := e.payment.Pay(c, l.Seller, sellerAmount); err != nil {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("seller payout failed, rolling back")
		if rerr := e.escrow.RevertFee(c, fee); rerr != nil {
			c.WithFields(log.Fields{
				"listingId": l.ListingId,
				"err":       rerr,
			}).Error("escrow.RevertFee failed, accrued fees overstated")
		}
		e.compensateTransfer(c, l, buyer)
		e.rollbackFlip(c, l.ListingId)
		return domain.ErrPaymentFailed
	}

	soldAt := timeNow()
	if err := e.listings.Update(c, l.ListingId, listing.Patchable{
		SoldAt:    &soldAt,
		SoldTo:    &buyer,
		SoldFor:   &amount,
		UpdatedAt: &soldAt,
	}); err != nil {
		c.WithField("err", err).Error("recording sale bookkeeping failed")
	}
	return nil
}

// compensateTransfer undoes a committed asset transfer when a later step
// of the settlement fails.
func (e *engine) compensateTransfer(c ctx.Ctx, l *listing.Listing, buyer domain.Address) {
	if err := e.registry.Transfer(c, l.Collection, l.TokenId, buyer, l.Seller); err != nil {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("compensating transfer failed, asset stranded with buyer")
		e.met.BumpSum("settle.stranded", 1)
	}
}

// clearRefundedBid drops a bid record whose escrow has already been paid
// back to the bidder. Leaving the record in place would refund the same
// amount a second time.
func (e *engine) clearRefundedBid(c ctx.Ctx, id domain.ListingId, refunded uint64) {
	now := timeNow()
	clear := func(c ctx.Ctx) error {
		if err := e.escrow.ReleaseBid(c, refunded); err != nil {
			return err
		}
		return e.listings.Update(c, id, listing.Patchable{
			ClearBid:  true,
			UpdatedAt: &now,
		})
	}
	if err := e.query.RunWithTransaction(c, clear); err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"amount":    refunded,
			"err":       err,
		}).Error("clearing refunded bid failed, double refund possible")
		e.met.BumpSum("bid.clear.err", 1)
	}
	e.invalidate(c, id)
}

func (e *engine) rollbackFlip(c ctx.Ctx, id domain.ListingId) {
	now := timeNow()
	if err := e.listings.Update(c, id, listing.Patchable{
		Active:    ptr.Bool(true),
		UpdatedAt: &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("rollback of active flag failed")
		e.met.BumpSum("settle.rollback.err", 1)
	}
	e.invalidate(c, id)
}

func (e *engine) invalidate(c ctx.Ctx, id domain.ListingId) {
	if err := e.listingCache.Del(c, fmt.Sprintf("%d", id)); err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Warn("listingCache.Del failed")
	}
}

// emit appends an observable notification after the operation has
// committed. Emission failures are logged, never rolled back.
func (e *engine) emit(c ctx.Ctx, event *listing.Event) {
	event.EventId = uuid.New().String()
	event.CreatedAt = timeNow()
	if err := e.events.Insert(c, event); err != nil {
		c.WithFields(log.Fields{
			"listingId": event.ListingId,
			"type":      event.Type,
			"err":       err,
		}).Error("emit event failed")
	}
}
