// Package relayer holds the attestation signer counterpart of the bridge's
// fulfillment verifier. The off-chain relayer observes a foreign-chain
// lock, builds the inbound transaction record and signs its canonical
// hash; the bridge accepts nothing else as payout authority.
package relayer

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
)

type Signer struct {
	priv ed25519.PrivateKey
}

func NewSigner(priv ed25519.PrivateKey) *Signer {
	return &Signer{priv: priv}
}

// GenSigner creates a signer with a fresh key, for tests and local runs.
func GenSigner() (*Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Signer{priv: priv}, nil
}

// Sign attests tx by signing its canonical hash.
func (s *Signer) Sign(tx *state.Transaction) []byte {
	hash := state.TxHash(tx)
	return ed25519.Sign(s.priv, hash.Bytes())
}

// PublicKey returns the verifying key in the bridge's text encoding.
func (s *Signer) PublicKey() string {
	return common.EncodeEd25519PublicKey(s.priv.Public().(ed25519.PublicKey))
}
