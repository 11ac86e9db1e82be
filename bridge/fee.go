package bridge

import "math/big"

// ComputeFee is floor(amount * numerator / FeeDenominator). Integer
// truncating division, no rounding adjustment; the payee always receives
// amount - fee so no dust is created or lost.
func ComputeFee(amount *big.Int, numerator uint16) *big.Int {
	fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(uint64(numerator)))
	return fee.Quo(fee, new(big.Int).SetUint64(uint64(FeeDenominator)))
}
