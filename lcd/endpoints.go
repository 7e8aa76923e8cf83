package lcd

import (
	"net/url"

	"github.com/cosmos/cosmos-sdk/types"
)

type AllowanceArgs struct {
	Granter string
	Grantee string
}

type GrantsArgs struct {
	Granter    string
	Grantee    string
	MsgTypeURL string
}

type BalancesArgs struct {
	Address string
	Limit   uint64
	Key     string
}

type pageQuery struct {
	Key   string `url:"pagination.key,omitempty"`
	Limit uint64 `url:"pagination.limit,omitempty"`
}

func AccountRequest(address string) Descriptor {
	return Descriptor{Path: PathAuth + "accounts/" + url.PathEscape(address)}
}

func AllowanceRequest(args AllowanceArgs) Descriptor {
	return Descriptor{
		Path: PathFeegrant + "allowance/" + url.PathEscape(args.Granter) + "/" + url.PathEscape(args.Grantee),
	}
}

func AllowancesRequest(grantee string) Descriptor {
	return Descriptor{Path: PathFeegrant + "allowances/" + url.PathEscape(grantee)}
}

func BalancesRequest(args BalancesArgs) Descriptor {
	// never fails for a struct value
	params, _ := ParamsFromStruct(pageQuery{Key: args.Key, Limit: args.Limit})
	return Descriptor{
		Path:   PathBank + "balances/" + url.PathEscape(args.Address),
		Params: params,
	}
}

func GrantsRequest(args GrantsArgs) Descriptor {
	var params Params
	params = params.Add("granter", args.Granter).Add("grantee", args.Grantee)
	if args.MsgTypeURL != "" {
		params = params.Add("msg_type_url", args.MsgTypeURL)
	}
	return Descriptor{Path: PathAuthz + "grants", Params: params}
}

func CodeHashRequest(contract string) Descriptor {
	return Descriptor{Path: PathCompute + "code_hash/by_contract_address/" + url.PathEscape(contract)}
}

func toSdkCoins(body Object) (types.Coins, error) {
	res, err := Decode[BalancesResponse]("")(body)
	if err != nil {
		return nil, err
	}
	return ToCoins(res.Balances)
}

// Account returns the account registered at an address.
func Account(opts ...Option) Dispatcher[string, AccountResponse] {
	return Query(AccountRequest, Decode[AccountResponse]("account"), opts...)
}

// Allowance returns the fee allowance granter gave grantee.
func Allowance(opts ...Option) Dispatcher[AllowanceArgs, AllowanceResponse] {
	return Query(AllowanceRequest, Decode[AllowanceResponse]("allowance"), opts...)
}

// Allowances lists every fee allowance held by a grantee.
func Allowances(opts ...Option) Dispatcher[string, []AllowanceResponse] {
	return Query(AllowancesRequest, Decode[[]AllowanceResponse]("allowances"), opts...)
}

// Balances returns one page of bank balances.
func Balances(opts ...Option) Dispatcher[BalancesArgs, types.Coins] {
	return Query(BalancesRequest, toSdkCoins, opts...)
}

// Grants lists authz grants between granter and grantee.
func Grants(opts ...Option) Dispatcher[GrantsArgs, []Grant] {
	return Query(GrantsRequest, Decode[[]Grant]("grants"), opts...)
}

// CodeHash returns the code hash of a compute contract.
func CodeHash(opts ...Option) Dispatcher[string, string] {
	return Query(CodeHashRequest, Decode[string]("code_hash"), opts...)
}
