package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Luismorlan/chain_in_go/model"
)

const (
	// Previous hash of the genesis block.
	GenesisPrevHash = "0"
	// Timestamp of the genesis block, 2019-11-05 UTC in unix milliseconds.
	GenesisTimestamp int64 = 1572912000000
	// Longest prefix a sha256 hex digest can have.
	MaxDifficulty = 64
	// How many nonces are tried between two cancellation checks.
	cancelCheckInterval = 1024
)

// MineOptions bounds the proof-of-work search. The zero value searches until
// a nonce is found.
type MineOptions struct {
	// Stop after this many nonces were tried. 0 means no limit.
	MaxIterations uint64
}

// NewBlock creates a block with nonce 0 and its initial hash.
func NewBlock(timestamp int64, txs []*model.Transaction, prevHash string) (*model.Block, error) {
	block := &model.Block{
		PreviousHash: prevHash,
		Timestamp:    timestamp,
		Transactions: txs,
	}
	hash, err := CalculateHash(block)
	if err != nil {
		return nil, err
	}
	block.Hash = hash
	return block, nil
}

// CreateGenesisBlock returns the fixed first block of every chain.
func CreateGenesisBlock() *model.Block {
	block, err := NewBlock(GenesisTimestamp, []*model.Transaction{}, GenesisPrevHash)
	if err != nil {
		// An empty transaction list always serializes.
		panic(err)
	}
	return block
}

// IsGenesisBlock reports whether b is field by field equal to a fresh genesis block.
func IsGenesisBlock(b *model.Block) bool {
	g := CreateGenesisBlock()
	return b != nil &&
		b.PreviousHash == g.PreviousHash &&
		b.Timestamp == g.Timestamp &&
		len(b.Transactions) == 0 &&
		b.Nonce == g.Nonce &&
		b.Hash == g.Hash
}

// GetBlockBytes serializes previous hash, timestamp, transactions and nonce,
// in that order. Transactions are JSON encoded with a fixed field order.
func GetBlockBytes(block *model.Block) ([]byte, error) {
	txs := block.Transactions
	if txs == nil {
		txs = []*model.Transaction{}
	}
	txBytes, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transactions: %w", err)
	}

	var rawBlock []byte
	rawBlock = append(rawBlock, block.PreviousHash...)
	rawBlock = append(rawBlock, Int64ToString(block.Timestamp)...)
	rawBlock = append(rawBlock, txBytes...)
	rawBlock = append(rawBlock, Int64ToString(block.Nonce)...)
	return rawBlock, nil
}

// CalculateHash recomputes the hex digest of the block's current fields.
func CalculateHash(block *model.Block) (string, error) {
	blockBytes, err := GetBlockBytes(block)
	if err != nil {
		return "", err
	}
	return SHA256Hex(blockBytes), nil
}

// Mine searches for a nonce whose block hash starts with difficulty '0' hex
// characters, filling in the nonce and hash. The current nonce is tried first,
// so a difficulty of 0 returns right away. The search only stops early when
// ctx is done or opts.MaxIterations nonces were tried.
func Mine(ctx context.Context, block *model.Block, difficulty int, opts MineOptions) error {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty %d out of range [0, %d]", difficulty, MaxDifficulty)
	}
	var tried uint64
	for {
		matched, hash, err := MatchDifficulty(block, difficulty)
		if err != nil {
			return err
		}
		block.Hash = hash
		if matched {
			return nil
		}
		if opts.MaxIterations > 0 && tried >= opts.MaxIterations {
			return fmt.Errorf("%w: %d nonces tried", model.ErrMiningAborted, tried)
		}
		if tried%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", model.ErrMiningAborted, ctx.Err())
			default:
			}
		}
		block.Nonce++
		tried++
	}
}

// MatchDifficulty recomputes the block hash and checks it against difficulty.
func MatchDifficulty(block *model.Block, difficulty int) (bool, string, error) {
	digest, err := CalculateHash(block)
	if err != nil {
		return false, "", err
	}
	return HasLeadingZeros(digest, difficulty), digest, nil
}

// HasLeadingZeros reports whether the first difficulty characters of the hex
// string are all '0'.
func HasLeadingZeros(hexHash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if difficulty > len(hexHash) {
		return false
	}
	return strings.Count(hexHash[:difficulty], "0") == difficulty
}

// HasValidTransactions is true iff every transaction in the block is valid.
// A transaction that cannot be checked, e.g. a missing signature, counts as
// invalid.
func HasValidTransactions(block *model.Block) bool {
	for _, tx := range block.Transactions {
		valid, err := IsValidTransaction(tx)
		if err != nil || !valid {
			return false
		}
	}
	return true
}
