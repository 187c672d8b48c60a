package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// listing creation
	ErrNotOwner     = errors.New("caller is not the asset owner")
	ErrNotApproved  = errors.New("marketplace is not an approved operator")
	ErrInvalidPrice = errors.New("price must be greater than zero")

	// purchase / bid misuse
	ErrNotActive           = errors.New("listing is not active")
	ErrIsAuction           = errors.New("listing is an auction")
	ErrNotAuction          = errors.New("listing is not an auction")
	ErrInsufficientPayment = errors.New("payment is below listing price")
	ErrSelfTrade           = errors.New("seller cannot buy own listing")
	ErrSelfBid             = errors.New("seller cannot bid on own listing")
	ErrBidTooLow           = errors.New("bid must exceed current highest bid")

	// timing
	ErrAuctionStillActive  = errors.New("auction has not reached its end time")
	ErrAuctionEndedAlready = errors.New("auction end time has passed")

	// admin / cancel gating
	ErrFeeTooHigh    = errors.New("fee exceeds the allowed cap")
	ErrNotAuthorized = errors.New("caller is not authorized")

	// external collaborators
	ErrUnknownAsset   = errors.New("asset is not known to the registry")
	ErrTransferFailed = errors.New("asset registry rejected the transfer")
	ErrPaymentFailed  = errors.New("payment rail rejected the payout")
)
