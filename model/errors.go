package model

import "errors"

var (
	// Signing a transaction with a key that does not own the sender address.
	ErrAuthorization = errors.New("no transactions for other wallets")
	// A transaction with a sender carries no signature.
	ErrMissingSignature = errors.New("transaction is not signed")
	// A submitted transaction is missing its sender or recipient.
	ErrAddress = errors.New("transaction must include from and to address")
	// A submitted transaction failed signature verification.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// A submitted transaction has a non-positive amount.
	ErrInvalidAmount = errors.New("transaction amount must be positive")
	// Mining was cancelled or ran out of its iteration budget.
	ErrMiningAborted = errors.New("mining aborted before a valid nonce was found")
)
