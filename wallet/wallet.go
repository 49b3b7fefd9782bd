package wallet

import (
	"fmt"

	"github.com/Luismorlan/chain_in_go/model"
	"github.com/Luismorlan/chain_in_go/utils"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Submitter accepts signed transactions, e.g. a *ledger.Ledger.
type Submitter interface {
	AddTransaction(tx *model.Transaction) error
}

// User signs and submits transactions with its own key.
type Wallet struct {
	keys *secp256k1.PrivateKey
}

// NewWallet loads the key at keyPath, or creates and stores a new one there
// when createNew is set.
func NewWallet(keyPath string, createNew bool) (*Wallet, error) {
	keys, err := utils.ParseKeyFile(keyPath, createNew)
	if err != nil {
		return nil, fmt.Errorf("failed to load key from %s: %w", keyPath, err)
	}
	return FromKey(keys), nil
}

// FromKey wraps an existing private key.
func FromKey(keys *secp256k1.PrivateKey) *Wallet {
	return &Wallet{keys: keys}
}

// GetPublicKey returns the wallet address.
func (w *Wallet) GetPublicKey() string {
	return utils.PublicKeyOf(w.keys)
}

// CreateTransaction builds and signs a transfer of value to receiverPK.
func (w *Wallet) CreateTransaction(receiverPK string, value float64) (*model.Transaction, error) {
	tx := model.NewTransfer(w.GetPublicKey(), receiverPK, value)
	if err := utils.SignTransaction(tx, w.keys); err != nil {
		return nil, err
	}
	return tx, nil
}

// TransferMoney signs a transfer and hands it to s.
func (w *Wallet) TransferMoney(s Submitter, receiverPK string, value float64) (*model.Transaction, error) {
	tx, err := w.CreateTransaction(receiverPK, value)
	if err != nil {
		return nil, err
	}
	if err := s.AddTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	return tx, nil
}
