package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/listing"
	"github.com/niftyx/goapi/service/query"
)

type eventImpl struct {
	query query.Mongo
}

// NewEvent creates new listing event repo
func NewEvent(query query.Mongo) listing.EventRepo {
	return &eventImpl{query: query}
}

func (im *eventImpl) Insert(c ctx.Ctx, e *listing.Event) error {
	e.Asset = e.Asset.ToLower()
	if e.Account != nil {
		e.Account = e.Account.ToLowerPtr()
	}
	if err := im.query.Insert(c, domain.TableListingEvents, e); err != nil {
		c.WithFields(log.Fields{
			"listingId": e.ListingId,
			"type":      e.Type,
			"err":       err,
		}).Error("insert listing event failed")
		return err
	}
	return nil
}

func (im *eventImpl) FindAll(c ctx.Ctx, optFns ...listing.EventFindAllOptionsFunc) ([]*listing.Event, error) {
	opts, err := listing.GetEventFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	offset := int32(0)
	limit := int32(500)

	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	qry := bson.M{}
	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}
	if opts.Type != nil {
		qry["type"] = *opts.Type
	}

	res := []*listing.Event{}
	if err := im.query.Search(c, domain.TableListingEvents, int(offset), int(limit), "createdAt", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("search listing events failed")
		return nil, err
	}
	return res, nil
}
