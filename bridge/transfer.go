package bridge

import (
	"math/big"
	"strings"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
	logger "github.com/sirupsen/logrus"
)

// FtOnTransfer reacts to the token contract's transfer-with-message
// notification. It returns the refund the token contract must credit back
// to the sender: 0 when the deposit was consumed, the full amount on any
// rejection. Rejections never touch the ledger or the nonce.
//
// The message names the destination: a 40-hex-char address (42 with the
// 0x prefix) immediately followed by the destination chain identifier.
func (b *Bridge) FtOnTransfer(call *Call, sender string, amount *big.Int, msg string) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	refund := new(big.Int).Set(amount)

	// only the accepted token contract may notify, and only via a
	// cross-contract call signed by the sender
	if call.Caller != b.tokenAccount {
		logger.Error("PANIC: Not supported fungible token")
		return refund, ErrNotSupportedToken
	}
	if call.Caller == call.Signer {
		logger.Error("PANIC: Should only be called via cross-contract call")
		return refund, ErrOnlyCrossContractCall
	}
	if sender != call.Signer {
		logger.Error("PANIC: Sender_id is not the signer of tx")
		return refund, ErrSenderNotSigner
	}

	destAddress, destChain, err := parseTransferMessage(msg)
	if err != nil {
		logger.Errorf("PANIC: %v", err)
		return refund, err
	}

	supported, err := b.statedb.HasChain(destChain)
	if err != nil {
		return refund, err
	}
	if !supported {
		logger.Error("PANIC: Chain is not supported")
		return refund, ErrChainNotSupported
	}

	// read-only storage gate; the debit happens only once every check
	// has passed so a rejection is a strict no-op
	acc, err := b.checkCharge(sender, b.costOnTransfer)
	if err != nil {
		return refund, err
	}

	if amount.Sign() <= 0 {
		return refund, ErrZeroAmount
	}
	limit, err := b.getBigInt(keyLimitPerSend)
	if err != nil {
		return refund, err
	}
	if amount.Cmp(limit) > 0 {
		logger.Error("PANIC: Amount is over the limit per 1 send")
		return refund, ErrOverLimitPerSend
	}

	nonce, err := b.getBigInt(keyNonce)
	if err != nil {
		return refund, err
	}

	tx := &state.Transaction{
		FromUser:  sender,
		ToUser:    destAddress,
		Amount:    new(big.Int).Set(amount),
		Timestamp: call.Timestamp,
		FromChain: state.CurrentChain,
		ToChain:   destChain,
		Nonce:     nonce,
	}
	// record, storage debit and nonce advance commit atomically; a failed
	// write refunds the whole deposit with no partial ledger state
	acc.Paid = new(big.Int).Sub(acc.Paid, b.costOnTransfer)
	next := new(big.Int).Add(nonce, big.NewInt(1))
	if err := b.statedb.RecordOutbound(tx.FromUser, tx, acc, keyNonce, next); err != nil {
		return refund, err
	}

	logger.Infof("Sent %s tokens from %s to %s in direction %s->%s",
		amount, sender, destAddress, state.CurrentChain, destChain)

	// whole deposit consumed
	return new(big.Int), nil
}

// parseTransferMessage splits msg into a normalized 0x-prefixed destination
// address and the destination chain identifier.
func parseTransferMessage(msg string) (string, string, error) {
	addrLen := common.EthAddressLength
	if strings.HasPrefix(msg, "0x") || strings.HasPrefix(msg, "0X") {
		addrLen += 2
	}
	if len(msg) <= addrLen {
		return "", "", ErrBadTransferMsg
	}

	address := msg[:addrLen]
	chain := msg[addrLen:]
	if !common.IsValidEthAddress(address) {
		return "", "", ErrBadTransferMsg
	}

	return "0x" + strings.ToLower(common.Trim0xPrefix(address)), chain, nil
}
