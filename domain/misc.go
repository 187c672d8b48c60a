package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Table is a mongo collection name.
type Table string

const (
	TableListings            Table = "listings"
	TableListingEvents       Table = "listing_events"
	TableCounters            Table = "counters"
	TableMarketplaceSettings Table = "marketplace_settings"
	TableEscrowLedgers       Table = "escrow_ledgers"
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ListingId is allocated by the engine, strictly increasing and never reused.
type ListingId uint64

// BpsDenominator is the basis-point denominator. 10000 bps = 100%.
const BpsDenominator = 10000

func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, xerrors.Errorf("invalid number format %s", n)
		}
		bns = append(bns, bn)
	}
	return bns, nil
}
