package bridge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageDepositFirstTime(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()

	user := "alice.testnet"

	// below the registration cost
	err = env.depositStorage(user, big.NewInt(999))
	assert.ErrorIs(t, err, ErrNotEnoughNearAttached)

	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.False(t, info.Registered)
	assert.Equal(t, int64(0), info.Paid.Int64())

	// exactly ONE_NEAR worth of fixture units: paid == deposit - register cost
	assert.NoError(t, env.depositStorage(user, big.NewInt(5000)))

	info, err = env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.True(t, info.Registered)
	assert.Equal(t, int64(4000), info.Paid.Int64())
	assert.Equal(t, int64(4000), info.TotalStoragePaid.Int64())

	// second deposit credits in full
	assert.NoError(t, env.depositStorage(user, big.NewInt(300)))
	info, err = env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4300), info.Paid.Int64())
}

func TestStorageWithdraw(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()

	user := "alice.testnet"

	// never deposited
	err = env.bridge.StorageWithdraw(env.callFrom(user, nil), big.NewInt(1))
	assert.ErrorIs(t, err, ErrNoStoragePaid)

	require.NoError(t, env.depositStorage(user, big.NewInt(5000)))

	// over the paid balance: fails and changes nothing
	err = env.bridge.StorageWithdraw(env.callFrom(user, nil), big.NewInt(4001))
	assert.ErrorIs(t, err, ErrWithdrawOverPaid)

	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), info.Paid.Int64())

	// partial withdraw
	assert.NoError(t, env.bridge.StorageWithdraw(env.callFrom(user, nil), big.NewInt(1500)))
	info, err = env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(2500), info.Paid.Int64())
	assert.True(t, info.Registered)

	// down to zero is allowed, paid never goes negative
	assert.NoError(t, env.bridge.StorageWithdraw(env.callFrom(user, nil), big.NewInt(2500)))
	info, err = env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), info.Paid.Int64())
}

func TestChargeTiering(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()

	// no row at all
	_, err = env.bridge.checkCharge("ghost.testnet", simCostOnTransfer)
	assert.ErrorIs(t, err, ErrNotStoragePaid)

	user := "alice.testnet"
	require.NoError(t, env.depositStorage(user, big.NewInt(1000)))

	// row exists but paid == 0 (deposit exactly covered registration)
	_, err = env.bridge.checkCharge(user, simCostOnTransfer)
	assert.ErrorIs(t, err, ErrNotStoragePaid)

	// 0 < paid < cost is the distinct under-paid state
	require.NoError(t, env.depositStorage(user, big.NewInt(50)))
	_, err = env.bridge.checkCharge(user, simCostOnTransfer)
	assert.ErrorIs(t, err, ErrNotEnoughStoragePaid)

	require.NoError(t, env.depositStorage(user, big.NewInt(50)))
	acc, err := env.bridge.checkCharge(user, simCostOnTransfer)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), acc.Paid.Int64())
}

func TestContractBalanceTracksDeposits(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()

	require.NoError(t, env.depositStorage("alice.testnet", big.NewInt(5000)))
	require.NoError(t, env.depositStorage("bob.testnet", big.NewInt(2000)))

	balance, err := env.bridge.ContractBalance()
	assert.NoError(t, err)
	assert.Equal(t, int64(7000), balance.Int64())

	require.NoError(t, env.bridge.StorageWithdraw(env.callFrom("alice.testnet", nil), big.NewInt(1000)))

	balance, err = env.bridge.ContractBalance()
	assert.NoError(t, err)
	assert.Equal(t, int64(6000), balance.Int64())
}
