package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/database/mongoclient"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/marketplace"
	"github.com/niftyx/goapi/service/query"
)

type settingsImpl struct {
	query query.Mongo
}

// NewSettings creates new marketplace settings repo
func NewSettings(query query.Mongo) marketplace.SettingsRepo {
	return &settingsImpl{query: query}
}

func (im *settingsImpl) Get(c ctx.Ctx) (*marketplace.Settings, error) {
	res := &marketplace.Settings{}
	err := im.query.FindOne(c, domain.TableMarketplaceSettings, bson.M{"settingsId": marketplace.SettingsId}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("find marketplace settings failed")
		return nil, err
	}
	return res, nil
}

func (im *settingsImpl) Update(c ctx.Ctx, patchable marketplace.SettingsPatchable) error {
	updater, err := mongoclient.MakeBsonM(&patchable)
	if err != nil {
		c.WithField("err", err).Error("make bsonM failed")
		return err
	}

	// a zero fee is a legal setting
	if patchable.FeeBps != nil {
		updater["feeBps"] = *patchable.FeeBps
	}

	if err := im.query.Patch(c, domain.TableMarketplaceSettings, bson.M{"settingsId": marketplace.SettingsId}, updater); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithField("err", err).Error("patch marketplace settings failed")
		return err
	}
	return nil
}

func (im *settingsImpl) EnsureDefault(c ctx.Ctx, owner domain.Address, feeBps uint64) error {
	if _, err := im.Get(c); err == nil {
		return nil
	} else if err != domain.ErrNotFound {
		return err
	}

	settings := &marketplace.Settings{
		SettingsId: marketplace.SettingsId,
		FeeBps:     feeBps,
		Owner:      owner.ToLower(),
		UpdatedAt:  time.Now(),
	}
	if err := im.query.Insert(c, domain.TableMarketplaceSettings, settings); err != nil {
		if err == query.ErrDuplicateKey {
			// another instance won the race
			return nil
		}
		c.WithFields(log.Fields{
			"owner": owner,
			"err":   err,
		}).Error("insert default marketplace settings failed")
		return err
	}
	return nil
}
