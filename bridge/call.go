package bridge

import "math/big"

// Call is the envelope of one entry-point invocation: who called, how much
// native currency and gas came attached, and when. Handlers receive it
// explicitly instead of reading ambient host state.
type Call struct {
	Caller     string   // predecessor account
	Signer     string   // transaction signer account
	Deposit    *big.Int // attached native currency in yocto
	PrepaidGas uint64
	Timestamp  uint64 // block time in seconds
}

func (c *Call) deposit() *big.Int {
	if c.Deposit == nil {
		return new(big.Int)
	}
	return c.Deposit
}

// requireOneYocto enforces the exactly-one-yocto convention on payable
// calls that move funds: the attached deposit proves a full-access key.
func requireOneYocto(call *Call) error {
	if call.deposit().Cmp(big.NewInt(1)) != 0 {
		return ErrOneYoctoMissing
	}
	return nil
}
