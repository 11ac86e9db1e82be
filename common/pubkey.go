package common

import (
	"crypto/ed25519"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// CurveType tags the signature scheme of a text-encoded public key.
type CurveType string

const (
	CurveEd25519   CurveType = "ed25519"
	CurveSecp256k1 CurveType = "secp256k1"
)

var (
	ErrPubKeyMalformed = errors.New("public key is not parseable")
	ErrPubKeyBadCurve  = errors.New("public key curve is not supported")
)

// PublicKey is a parsed "<curve>:<base58 data>" key string, the text
// encoding NEAR uses for account keys.
type PublicKey struct {
	Curve CurveType
	Data  []byte
}

// ParsePublicKey decodes "<curve>:<base58>". The curve prefix is required.
// Key material length is validated for the curves we know about.
func ParsePublicKey(s string) (*PublicKey, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, ErrPubKeyMalformed
	}

	data := base58.Decode(parts[1])
	if len(data) == 0 {
		return nil, ErrPubKeyMalformed
	}

	curve := CurveType(strings.ToLower(parts[0]))
	switch curve {
	case CurveEd25519:
		if len(data) != ed25519.PublicKeySize {
			return nil, ErrPubKeyMalformed
		}
	case CurveSecp256k1:
		if len(data) != 64 {
			return nil, ErrPubKeyMalformed
		}
	default:
		return nil, ErrPubKeyBadCurve
	}

	return &PublicKey{Curve: curve, Data: data}, nil
}

// String re-encodes the key in its canonical text form.
func (pk *PublicKey) String() string {
	return string(pk.Curve) + ":" + base58.Encode(pk.Data)
}

// Ed25519 returns the key material as an ed25519 verifying key.
func (pk *PublicKey) Ed25519() ed25519.PublicKey {
	return ed25519.PublicKey(pk.Data)
}

// EncodeEd25519PublicKey renders raw ed25519 key bytes in the text form
// accepted by ParsePublicKey.
func EncodeEd25519PublicKey(pub ed25519.PublicKey) string {
	return string(CurveEd25519) + ":" + base58.Encode(pub)
}
