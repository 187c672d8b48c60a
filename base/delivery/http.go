package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// ErrorPayload is the structured failure surfaced to callers: the error
// kind plus the listing id it concerns.
type ErrorPayload struct {
	Kind      string            `json:"kind"`
	ListingId *domain.ListingId `json:"listingId,omitempty"`
	Message   string            `json:"message"`
}

var errKinds = map[error]string{
	domain.ErrNotFound:            "NotFound",
	domain.ErrBadParamInput:       "BadParamInput",
	domain.ErrNotOwner:            "NotOwner",
	domain.ErrNotApproved:         "NotApproved",
	domain.ErrInvalidPrice:        "InvalidPrice",
	domain.ErrNotActive:           "NotActive",
	domain.ErrIsAuction:           "IsAuction",
	domain.ErrNotAuction:          "NotAuction",
	domain.ErrInsufficientPayment: "InsufficientPayment",
	domain.ErrSelfTrade:           "SelfTrade",
	domain.ErrSelfBid:             "SelfBid",
	domain.ErrBidTooLow:           "BidTooLow",
	domain.ErrAuctionStillActive:  "AuctionStillActive",
	domain.ErrAuctionEndedAlready: "AuctionEndedAlready",
	domain.ErrFeeTooHigh:          "FeeTooHigh",
	domain.ErrNotAuthorized:       "NotAuthorized",
	domain.ErrUnknownAsset:        "UnknownAsset",
	domain.ErrTransferFailed:      "TransferFailed",
	domain.ErrPaymentFailed:       "PaymentFailed",
}

var errStatuses = map[error]int{
	domain.ErrNotFound:            http.StatusNotFound,
	domain.ErrNotActive:           http.StatusNotFound,
	domain.ErrUnknownAsset:        http.StatusNotFound,
	domain.ErrNotAuthorized:       http.StatusForbidden,
	domain.ErrNotOwner:            http.StatusForbidden,
	domain.ErrNotApproved:         http.StatusForbidden,
	domain.ErrTransferFailed:      http.StatusBadGateway,
	domain.ErrPaymentFailed:       http.StatusBadGateway,
	domain.ErrInternalServerError: http.StatusInternalServerError,
}

// ErrorKind reports the taxonomy name for a sentinel error, or "Internal"
// when the error is not a caller facing kind.
func ErrorKind(err error) string {
	for sentinel, kind := range errKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return "Internal"
}

func errorStatus(err error) int {
	for sentinel, status := range errStatuses {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	for sentinel := range errKinds {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// MakeErrResp maps a settlement engine error onto a structured failure
// response carrying the error kind and the listing id.
func MakeErrResp(c echo.Context, id *domain.ListingId, err error) error {
	if errors.Is(err, query.ErrNotFound) {
		err = domain.ErrNotActive
	}
	payload := ErrorPayload{
		Kind:      ErrorKind(err),
		ListingId: id,
		Message:   err.Error(),
	}
	return c.JSON(errorStatus(err), JsonResponse{payload, JsonResponseStatusFail})
}
