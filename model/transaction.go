package model

import (
	"encoding/json"
	"time"
)

// Origin tells where the value moved by a transaction comes from. It is
// either Issued (a mining reward, no sender) or Transferred (a sender
// address that must sign).
type Origin interface {
	isOrigin()
}

// Issued marks value created by the ledger itself, e.g. a mining reward.
// Issued transactions are never signed and are always valid.
type Issued struct{}

// Transferred marks value moved out of the sender's address.
type Transferred struct {
	// Hex encoded public key of the sender.
	Address string
}

func (Issued) isOrigin()      {}
func (Transferred) isOrigin() {}

type Transaction struct {
	// Where the value comes from.
	From Origin
	// Hex encoded public key of the receiver.
	To string
	// How much value to transfer.
	Amount float64
	// Creation time in unix milliseconds.
	Timestamp int64
	// Hex encoded DER signature over the transaction digest. Empty until signed.
	Signature string
}

// NewTransaction records the fields and the current instant. No validation is
// done here so that reward transactions can be built with an Issued origin.
func NewTransaction(from Origin, to string, amount float64) *Transaction {
	if from == nil {
		from = Issued{}
	}
	return &Transaction{
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewTransfer creates an unsigned transaction moving amount from one address to another.
func NewTransfer(from, to string, amount float64) *Transaction {
	return NewTransaction(Transferred{Address: from}, to, amount)
}

// NewReward creates a transaction issuing amount to the given address.
func NewReward(to string, amount float64) *Transaction {
	return NewTransaction(Issued{}, to, amount)
}

// Sender returns the sender address, or false for issued value.
func (t *Transaction) Sender() (string, bool) {
	if tr, ok := t.From.(Transferred); ok {
		return tr.Address, true
	}
	return "", false
}

// IsIssued reports whether the transaction has no sender.
func (t *Transaction) IsIssued() bool {
	_, ok := t.Sender()
	return !ok
}

// Involves reports whether address is the sender or the receiver.
func (t *Transaction) Involves(address string) bool {
	if from, ok := t.Sender(); ok && from == address {
		return true
	}
	return t.To == address
}

// transactionJSON fixes the field order of the serialized transaction, which
// is part of the block hash.
type transactionJSON struct {
	FromAddress *string `json:"fromAddress"`
	ToAddress   string  `json:"toAddress"`
	Amount      float64 `json:"amount"`
	Timestamp   int64   `json:"timestamp"`
	Signature   string  `json:"signature,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	out := transactionJSON{
		ToAddress: t.To,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
		Signature: t.Signature,
	}
	if from, ok := t.Sender(); ok {
		out.FromAddress = &from
	}
	return json.Marshal(out)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var in transactionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.From = Issued{}
	if in.FromAddress != nil {
		t.From = Transferred{Address: *in.FromAddress}
	}
	t.To = in.ToAddress
	t.Amount = in.Amount
	t.Timestamp = in.Timestamp
	t.Signature = in.Signature
	return nil
}

// TransactionPool holds transactions submitted but not yet mined, in
// submission order. Only the owner appends to it or drops from it.
type TransactionPool struct {
	txs []*Transaction
}

// NewTransactionPool creates an empty pool.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{}
}

func (p *TransactionPool) Add(tx *Transaction) {
	p.txs = append(p.txs, tx)
}

func (p *TransactionPool) Len() int {
	return len(p.txs)
}

// Items returns the pending transactions. The returned slice is a fresh copy;
// the transactions themselves are shared.
func (p *TransactionPool) Items() []*Transaction {
	out := make([]*Transaction, len(p.txs))
	copy(out, p.txs)
	return out
}

// DropFirst removes the n oldest transactions, e.g. once they are mined.
func (p *TransactionPool) DropFirst(n int) {
	if n >= len(p.txs) {
		p.txs = nil
		return
	}
	rest := make([]*Transaction, len(p.txs)-n)
	copy(rest, p.txs[n:])
	p.txs = rest
}
