package bridge

import "math/big"

const (
	// FeeDenominator gives the fee numerator basis-point resolution.
	FeeDenominator uint16 = 10000

	// GasForFulfill is the prepaid-gas floor of a fulfill call; the
	// handler suspends across a cross-contract call and cannot safely
	// run out of gas mid-flight.
	GasForFulfill uint64 = 80_000_000_000_000
)

// MinTokenStorageDeposit is the smallest token-contract storage deposit
// the fee wallet must hold before a fee leg is attempted.
var MinTokenStorageDeposit = func() *big.Int {
	v, _ := new(big.Int).SetString("1250000000000000000000", 10)
	return v
}()

// Config carries the construction parameters of the bridge. Owner,
// relayer key, fee wallet, fee numerator and limit seed the mutable
// configuration on first start; the storage costs and the token account
// are protocol constants and never change afterwards.
type Config struct {
	Owner        string
	RelayerRole  string // "ed25519:<base58>" text encoding
	Token        string // the one fungible token this bridge accepts
	FeeWallet    string
	LimitPerSend *big.Int
	FeeNumerator uint16

	// fixed storage-rent costs in yocto, debited per gated call
	CostRegister   *big.Int
	CostOnTransfer *big.Int
	CostFulfill    *big.Int
	CostAddChain   *big.Int
}
