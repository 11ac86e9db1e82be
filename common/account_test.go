package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAccountID(t *testing.T) {
	valid := []string{
		"alice.testnet",
		"bob",
		"sub.account.near",
		"a1-b2_c3",
		strings.Repeat("a", 64),
	}
	for _, s := range valid {
		assert.True(t, IsValidAccountID(s), s)
	}

	invalid := []string{
		"",
		"a",
		"Alice.testnet",
		"has space",
		".leading",
		"trailing.",
		"double..dot",
		"-leading",
		"trailing-",
		strings.Repeat("a", 65),
	}
	for _, s := range invalid {
		assert.False(t, IsValidAccountID(s), s)
	}
}

func TestIsValidEthAddress(t *testing.T) {
	bare := "00112233445566778899aabbccddeeff00112233"
	assert.True(t, IsValidEthAddress(bare))
	assert.True(t, IsValidEthAddress("0x"+bare))
	assert.True(t, IsValidEthAddress("0x"+strings.ToUpper(bare)))

	assert.False(t, IsValidEthAddress(bare[:39]))
	assert.False(t, IsValidEthAddress(bare+"00"))
	assert.False(t, IsValidEthAddress("zz"+bare[2:]))
}

func TestRandAccountID(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.True(t, IsValidAccountID(RandAccountID()))
	}
}
