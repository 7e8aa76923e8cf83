package lcd

// Module prefixes for composing request builders.
const (
	PathAuth     = "/cosmos/auth/v1beta1/"
	PathAuthz    = "/cosmos/authz/v1beta1/"
	PathBank     = "/cosmos/bank/v1beta1/"
	PathCompute  = "/compute/v1beta1/"
	PathFeegrant = "/cosmos/feegrant/v1beta1/"
)
