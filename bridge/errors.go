package bridge

import "errors"

// The message strings below are part of the external contract: relayers and
// integration tooling match on them, so they are never rephrased.
var (
	// administration
	ErrOnlyOwner       = errors.New("Only owner function")
	ErrOneYoctoMissing = errors.New("Requires attached deposit of exactly 1 yoctoNEAR")
	ErrFeeTooHigh      = errors.New("Fee is to high")
	ErrSameOwner       = errors.New("Current owner is equal to new owner")
	ErrSameFee         = errors.New("Current fee is equal to new fee")
	ErrSameFeeWallet   = errors.New("Current feeWallet is equal to new feeWallet")
	ErrSameLimit       = errors.New("Current limit is equal to new limit")
	ErrSameRelayer     = errors.New("Current relayer is equal to new relayer")

	// relayer key validation
	ErrRelayerRoleNotConvertible = errors.New("Relayer role is not convertible to PublicKey type")
	ErrRelayerNotConvertible     = errors.New("Not convertible to PublicKey type")
	ErrRelayerWrongCurve         = errors.New("The only supported curve type for relayer role is ED25519")

	// chain registry
	ErrChainAlreadyInList = errors.New("Chain is already in the list")
	ErrChainNotInList     = errors.New("Chain is not in the list yet")

	// storage ledger
	ErrNotEnoughNearAttached = errors.New("Not enough NEAR attached")
	ErrNoStoragePaid         = errors.New("No storage paid")
	ErrWithdrawOverPaid      = errors.New("Amount is more than your storage paid")
	ErrNotStoragePaid        = errors.New("Not storage paid")
	ErrNotEnoughStoragePaid  = errors.New("Not enough storage paid")

	// outbound handler
	ErrNotSupportedToken     = errors.New("Not supported fungible token")
	ErrOnlyCrossContractCall = errors.New("Should only be called via cross-contract call")
	ErrSenderNotSigner       = errors.New("Sender_id is not the signer of tx")
	ErrBadTransferMsg        = errors.New("42 hexadecimal characters as ETH address should be specified in msg field + destination chain")
	ErrChainNotSupported     = errors.New("Chain is not supported")
	ErrZeroAmount            = errors.New("Amount must be positive")
	ErrOverLimitPerSend      = errors.New("Amount is over the limit per 1 send")

	// inbound fulfillment
	ErrNotEnoughGas       = errors.New("Not enough gas prepaid, at least 80 Tgas is needed")
	ErrToUserNotAccountID = errors.New("Not convertible transaction.to field to AccountId type")
	ErrWrongToChain       = errors.New("Wrong 'toChain' in tx struct")
	ErrBadFromChain       = errors.New("Not supported fromChain in tx struct")
	ErrAlreadyFulfilled   = errors.New("Tx has already been fulfilled")
	ErrFulfillInProgress  = errors.New("Tx fulfillment is already in progress")
	ErrBadSignatureLength = errors.New("Signature should be a valid array of 64 bytes")
	ErrWrongSignature     = errors.New("Wrong signature")

	// native withdrawal
	ErrOverContractBalance   = errors.New("Amount is more than contract balance")
	ErrBelowTotalStoragePaid = errors.New("Left contract balance is less than users total storage paid")
)
