package payment

import (
	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/domain"
)

// Client is the payment rail boundary. Pay moves value out of engine
// custody unconditionally, a failure aborts the enclosing operation.
type Client interface {
	Pay(ctx ctx.Ctx, to domain.Address, amount uint64) error
}
