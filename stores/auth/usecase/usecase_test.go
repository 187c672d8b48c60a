package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	tkn, err := u.SignToken(ctx, "my-address")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "my-address", ads)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.ParseToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	ctx := ctx.Background()
	signer := usecase.New("jwt-secret")
	tkn, err := signer.SignToken(ctx, "my-address")
	assert.NoError(t, err)

	parser := usecase.New("other-secret")
	_, err = parser.ParseToken(ctx, tkn)
	assert.Error(t, err)
}
