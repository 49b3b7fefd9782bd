package utils

import "github.com/Luismorlan/chain_in_go/model"

// ApplyTransaction debits the sender, if any, and credits the receiver.
func ApplyTransaction(tx *model.Transaction, b model.Balances) {
	if from, ok := tx.Sender(); ok {
		b.L[from] -= tx.Amount
	}
	b.L[tx.To] += tx.Amount
}

// ApplyTransactions replays every transaction of every block, in chain order.
func ApplyTransactions(blocks []*model.Block, b model.Balances) {
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			ApplyTransaction(tx, b)
		}
	}
}

// BalanceOf scans the chain for address: every transaction it sent subtracts
// the amount, every transaction it received adds it.
func BalanceOf(blocks []*model.Block, address string) float64 {
	var balance float64
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if from, ok := tx.Sender(); ok && from == address {
				balance -= tx.Amount
			}
			if tx.To == address {
				balance += tx.Amount
			}
		}
	}
	return balance
}

// TransactionsFor returns, in chain order, every transaction address sent or received.
func TransactionsFor(blocks []*model.Block, address string) []*model.Transaction {
	var txs []*model.Transaction
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if tx.Involves(address) {
				txs = append(txs, tx)
			}
		}
	}
	return txs
}
