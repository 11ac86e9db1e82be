package common

import (
	"regexp"
	"strings"
)

const (
	// NEAR account id length bounds, see nomicon account id rules.
	MinAccountIDLength = 2
	MaxAccountIDLength = 64

	// Destination addresses on EVM chains: 40 hex chars, optionally 0x-prefixed.
	EthAddressLength = 40
)

var (
	// lowercase alphanumeric parts joined by a single '.', '-' or '_'
	accountIDRegexp  = regexp.MustCompile(`^([a-z\d]+[-_])*[a-z\d]+(\.([a-z\d]+[-_])*[a-z\d]+)*$`)
	ethAddressRegexp = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
)

// IsValidAccountID reports whether s is a well-formed NEAR account id.
func IsValidAccountID(s string) bool {
	if len(s) < MinAccountIDLength || len(s) > MaxAccountIDLength {
		return false
	}
	return accountIDRegexp.MatchString(s)
}

// IsValidEthAddress accepts a bare 40-hex-char address or the 42-char
// 0x-prefixed form.
func IsValidEthAddress(s string) bool {
	return ethAddressRegexp.MatchString(Trim0xPrefix(s))
}

// RandAccountID returns a fresh account id usable in tests.
func RandAccountID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := RandBytes(12)
	var sb strings.Builder
	for _, c := range b {
		sb.WriteByte(alphabet[int(c)%len(alphabet)])
	}
	return sb.String() + ".testnet"
}

// RandEthAddressStr returns a random 0x-prefixed destination address.
func RandEthAddressStr() string {
	return "0x" + ByteSliceToPureHexStr(RandBytes(20))
}
