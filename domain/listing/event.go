package listing

import (
	"time"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
)

type EventType string

const (
	EventTypeListed       EventType = "listed"
	EventTypeSold         EventType = "sold"
	EventTypeBidPlaced    EventType = "bidPlaced"
	EventTypeAuctionEnded EventType = "auctionEnded"
	EventTypeCancelled    EventType = "cancelled"
)

// Event is an observable notification for external indexers and UIs.
// Events are appended after the operation commits and are never part of
// the settlement's atomic unit.
type Event struct {
	EventId   string           `json:"eventId" bson:"eventId"`
	ListingId domain.ListingId `json:"listingId" bson:"listingId"`
	Type      EventType        `json:"type" bson:"type"`
	Asset     `bson:"inline"`
	// Account is the buyer for sold, the bidder for bidPlaced and the
	// winner for auctionEnded. Nil for listed, cancelled and no-bid ends.
	Account   *domain.Address `json:"account,omitempty" bson:"account,omitempty"`
	Amount    uint64          `json:"amount" bson:"amount"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

type EventFindAllOptions struct {
	ListingId *domain.ListingId
	Type      *EventType
	Offset    *int32
	Limit     *int32
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithListingId(id domain.ListingId) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.ListingId = &id
		return nil
	}
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func EventWithPagination(offset int32, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(ctx ctx.Ctx, event *Event) error
	FindAll(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
