package state

import (
	"database/sql"
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
)

// GetStorageAccount fetches one storage-rent row. Accounts that never
// deposited have no row and return ok=false.
func (st *StateDB) GetStorageAccount(account string) (*StorageAccount, bool, error) {
	query := `SELECT account, paid, totalPaid, registered FROM storage_paid WHERE account = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, false, err
	}

	var (
		acc        StorageAccount
		paid       string
		totalPaid  string
		registered int
	)
	if err := stmt.QueryRow(account).Scan(&acc.Account, &paid, &totalPaid, &registered); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	acc.Paid = common.DecStrToBigInt(paid)
	acc.TotalPaid = common.DecStrToBigInt(totalPaid)
	if acc.Paid == nil || acc.TotalPaid == nil {
		return nil, false, ErrorStoredRowInvalid
	}
	acc.Registered = registered != 0

	return &acc, true, nil
}

var putStorageAccountQuery = `INSERT OR REPLACE INTO storage_paid (account, paid, totalPaid, registered)
	VALUES (?, ?, ?, ?)`

// PutStorageAccount inserts or replaces one storage-rent row. Negative
// balances are rejected before they ever reach the table.
func (st *StateDB) PutStorageAccount(acc *StorageAccount) error {
	if err := checkStorageAccount(acc); err != nil {
		return err
	}

	stmt, err := st.stmtCache.Prepare(putStorageAccountQuery)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(storageAccountArgs(acc)...)
	return err
}

func checkStorageAccount(acc *StorageAccount) error {
	if acc.Paid == nil || acc.Paid.Sign() < 0 ||
		acc.TotalPaid == nil || acc.TotalPaid.Sign() < 0 {
		return ErrorAmountInvalid
	}
	return nil
}

func storageAccountArgs(acc *StorageAccount) []any {
	registered := 0
	if acc.Registered {
		registered = 1
	}
	return []any{acc.Account,
		common.BigIntToDecStr(acc.Paid), common.BigIntToDecStr(acc.TotalPaid), registered}
}

// TotalStoragePaid sums the outstanding paid balances across all accounts.
// It bounds the owner's native-fee withdrawal.
func (st *StateDB) TotalStoragePaid() (*big.Int, error) {
	query := `SELECT paid FROM storage_paid`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	total := new(big.Int)
	for rows.Next() {
		var paid string
		if err := rows.Scan(&paid); err != nil {
			return nil, err
		}
		v := common.DecStrToBigInt(paid)
		if v == nil {
			return nil, ErrorStoredRowInvalid
		}
		total.Add(total, v)
	}

	return total, rows.Err()
}
