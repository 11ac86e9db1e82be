package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxHashDeterministic(t *testing.T) {
	tx := RandInboundTransaction(7)
	other := *tx
	other.Amount = new(big.Int).Set(tx.Amount)
	other.Nonce = new(big.Int).Set(tx.Nonce)

	assert.Equal(t, TxHash(tx), TxHash(&other))
}

func TestTxHashSensitiveToEveryField(t *testing.T) {
	base := RandInboundTransaction(7)
	baseHash := TxHash(base)

	mutations := []func(tx *Transaction){
		func(tx *Transaction) { tx.FromUser = tx.FromUser + "x" },
		func(tx *Transaction) { tx.ToUser = tx.ToUser + "x" },
		func(tx *Transaction) { tx.Amount = new(big.Int).Add(tx.Amount, big.NewInt(1)) },
		func(tx *Transaction) { tx.Timestamp = tx.Timestamp + 1 },
		func(tx *Transaction) { tx.FromChain = "BSC" },
		func(tx *Transaction) { tx.ToChain = "ETH" },
		func(tx *Transaction) { tx.Nonce = new(big.Int).Add(tx.Nonce, big.NewInt(1)) },
	}

	for _, mutate := range mutations {
		tx := *base
		mutate(&tx)
		assert.NotEqual(t, baseHash, TxHash(&tx))
	}
}

func TestEncodeTransactionLayout(t *testing.T) {
	tx := &Transaction{
		FromUser:  "ab",
		ToUser:    "c",
		Amount:    big.NewInt(258), // 0x0102
		Timestamp: 1,
		FromChain: "ETH",
		ToChain:   CurrentChain,
		Nonce:     big.NewInt(0),
	}

	enc := EncodeTransaction(tx)

	// "ab" with u64-LE length prefix
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0, 'a', 'b'}, enc[:10])
	// amount as u128-LE right after "c"
	amount := enc[10+9 : 10+9+16]
	assert.Equal(t, byte(0x02), amount[0])
	assert.Equal(t, byte(0x01), amount[1])
}
