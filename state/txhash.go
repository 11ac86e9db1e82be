package state

import (
	"encoding/binary"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Canonical transaction encoding: fields in declaration order, strings as
// u64-LE length + raw bytes, amount and nonce as u128-LE, timestamp as
// u64-LE. Relayers produce signatures over the keccak256 of exactly this
// layout, so it cannot change without breaking every deployed signer.

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendString(buf []byte, s string) []byte {
	buf = appendU64(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendBigU128(buf []byte, v *big.Int) []byte {
	var b [16]byte
	if v != nil {
		// big.Int is big-endian; the wire layout is little-endian.
		be := v.FillBytes(make([]byte, 16))
		for i := 0; i < 16; i++ {
			b[i] = be[15-i]
		}
	}
	return append(buf, b[:]...)
}

// EncodeTransaction renders tx in the canonical byte layout.
func EncodeTransaction(tx *Transaction) []byte {
	buf := make([]byte, 0, 128)
	buf = appendString(buf, tx.FromUser)
	buf = appendString(buf, tx.ToUser)
	buf = appendBigU128(buf, tx.Amount)
	buf = appendU64(buf, tx.Timestamp)
	buf = appendString(buf, tx.FromChain)
	buf = appendString(buf, tx.ToChain)
	buf = appendBigU128(buf, tx.Nonce)
	return buf
}

// TxHash is the canonical digest used for replay protection and for the
// relayer attestation.
func TxHash(tx *Transaction) ethcommon.Hash {
	return crypto.Keccak256Hash(EncodeTransaction(tx))
}
