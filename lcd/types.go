package lcd

import (
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/pkg/errors"
)

const (
	TypeBasicAllowance    = "/cosmos.feegrant.v1beta1.BasicAllowance"
	TypePeriodicAllowance = "/cosmos.feegrant.v1beta1.PeriodicAllowance"
	TypeSecp256k1PubKey   = "/cosmos.crypto.secp256k1.PubKey"
)

type AccountResponse struct {
	Type          string  `json:"@type"`
	Address       string  `json:"address"`
	PubKey        *PubKey `json:"pub_key"`
	AccountNumber string  `json:"account_number"`
	Sequence      string  `json:"sequence"`
}

type PubKey struct {
	Type string `json:"@type"`
	Key  string `json:"key"`
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type BasicAllowance struct {
	Type       string  `json:"@type"`
	SpendLimit []Coin  `json:"spend_limit"`
	Expiration *string `json:"expiration"`
}

type PeriodicAllowance struct {
	Type             string          `json:"@type"`
	Basic            *BasicAllowance `json:"basic"`
	Period           *string         `json:"period"`
	PeriodSpendLimit []Coin          `json:"period_spend_limit"`
	PeriodCanSpend   []Coin          `json:"period_can_spend"`
	PeriodReset      *string         `json:"period_reset"`
}

// FeeAllowance holds either allowance kind; Type selects which fields are set.
type FeeAllowance struct {
	Type string `json:"@type"`

	// BasicAllowance
	SpendLimit []Coin  `json:"spend_limit,omitempty"`
	Expiration *string `json:"expiration,omitempty"`

	// PeriodicAllowance
	Basic            *BasicAllowance `json:"basic,omitempty"`
	Period           *string         `json:"period,omitempty"`
	PeriodSpendLimit []Coin          `json:"period_spend_limit,omitempty"`
	PeriodCanSpend   []Coin          `json:"period_can_spend,omitempty"`
	PeriodReset      *string         `json:"period_reset,omitempty"`
}

func (a FeeAllowance) IsPeriodic() bool {
	return a.Type == TypePeriodicAllowance
}

// Limit returns the overall spend limit regardless of allowance kind.
func (a FeeAllowance) Limit() []Coin {
	if a.IsPeriodic() && a.Basic != nil {
		return a.Basic.SpendLimit
	}
	return a.SpendLimit
}

type AllowanceResponse struct {
	Granter   string       `json:"granter"`
	Grantee   string       `json:"grantee"`
	Allowance FeeAllowance `json:"allowance"`
}

type Authorization struct {
	Type       string `json:"@type"`
	Msg        string `json:"msg,omitempty"`
	SpendLimit []Coin `json:"spend_limit,omitempty"`
}

type Grant struct {
	Authorization Authorization `json:"authorization"`
	Expiration    *string       `json:"expiration"`
}

type Pagination struct {
	NextKey *string `json:"next_key"`
	Total   string  `json:"total"`
}

type BalancesResponse struct {
	Balances   []Coin      `json:"balances"`
	Pagination *Pagination `json:"pagination"`
}

// ToCoins converts LCD coin strings into sdk coins, sorted by denom.
func ToCoins(coins []Coin) (types.Coins, error) {
	result := make(types.Coins, 0, len(coins))
	for _, c := range coins {
		amount, ok := math.NewIntFromString(c.Amount)
		if !ok {
			return nil, errors.Errorf("invalid amount %q for denom %s", c.Amount, c.Denom)
		}
		result = append(result, types.Coin{
			Denom:  c.Denom,
			Amount: amount,
		})
	}
	return result.Sort(), nil
}

// ValidateAddress checks bech32 encoding without assuming a chain prefix.
func ValidateAddress(address string) error {
	if _, _, err := bech32.DecodeAndConvert(address); err != nil {
		return errors.Wrapf(err, "invalid address %q", address)
	}
	return nil
}
