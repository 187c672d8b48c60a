package mongoclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/niftyx/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableListing struct {
		Active     *bool      `bson:"active,omitempty"`
		HighestBid *uint64    `bson:"highestBid,omitempty"`
		UpdatedAt  *time.Time `bson:"updatedAt,omitempty"`
		Note       string     `bson:"note"`
	}

	now := time.Now()
	patchable := &PatchableListing{}
	patchable.Active = ptr.Bool(false)
	patchable.HighestBid = ptr.Uint64(90)
	patchable.UpdatedAt = &now

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"active":     false,
			"highestBid": uint64(90),
			"updatedAt":  now,
			// field note is empty, so ignore
		},
		updater,
	)
}
