package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/database/mongoclient"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/listing"
	"github.com/niftyx/goapi/service/query"
)

// counterName is the counters document allocating listing ids.
const counterName = "listingId"

type counter struct {
	Name string           `bson:"name"`
	Seq  domain.ListingId `bson:"seq"`
}

type listingImpl struct {
	query query.Mongo
}

// NewListing creates new listing repo
func NewListing(query query.Mongo) listing.Repo {
	return &listingImpl{query: query}
}

func (im *listingImpl) FindOne(c ctx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	res := &listing.Listing{}
	err := im.query.FindOne(c, domain.TableListings, bson.M{"listingId": id}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("find listing failed")
		return nil, err
	}
	return res, nil
}

func (im *listingImpl) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	offset := int32(0)
	limit := int32(100)
	sort := "-listingId"

	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if opts.Sort != nil {
		sort = *opts.Sort
	}

	qry := bson.M{}
	if opts.Seller != nil {
		qry["seller"] = *opts.Seller
	}
	if opts.Collection != nil {
		qry["collection"] = *opts.Collection
	}
	if opts.IsAuction != nil {
		qry["isAuction"] = *opts.IsAuction
	}
	if opts.Active != nil {
		qry["active"] = *opts.Active
	}

	res := []*listing.Listing{}
	if err := im.query.Search(c, domain.TableListings, int(offset), int(limit), sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("search listings failed")
		return nil, err
	}
	return res, nil
}

func (im *listingImpl) Create(c ctx.Ctx, l *listing.Listing) error {
	l.Seller = l.Seller.ToLower()
	l.Asset = l.Asset.ToLower()
	if err := im.query.Insert(c, domain.TableListings, l); err != nil {
		c.WithFields(log.Fields{
			"listingId": l.ListingId,
			"err":       err,
		}).Error("insert listing failed")
		return err
	}
	return nil
}

func (im *listingImpl) Update(c ctx.Ctx, id domain.ListingId, patchable listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(&patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("make bsonM failed")
		return err
	}

	// MakeBsonM drops zero values, so flipping Active off or clearing a
	// refunded bid has to be spelled out again here.
	if patchable.Active != nil {
		updater["active"] = *patchable.Active
	}
	if patchable.HighestBid != nil {
		updater["highestBid"] = *patchable.HighestBid
	}
	if patchable.ClearBid {
		updater["highestBidder"] = nil
		updater["highestBid"] = uint64(0)
	}

	if err := im.query.Patch(c, domain.TableListings, bson.M{"listingId": id}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"listingId": id,
			"err":       err,
		}).Error("patch listing failed")
		return err
	}
	return nil
}

func (im *listingImpl) NextId(c ctx.Ctx) (domain.ListingId, error) {
	res := counter{}
	if err := im.query.Increment(c, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", 1); err != nil {
		c.WithField("err", err).Error("increment listing counter failed")
		return 0, err
	}
	return res.Seq, nil
}
