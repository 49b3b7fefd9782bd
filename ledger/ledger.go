package ledger

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Luismorlan/chain_in_go/config"
	"github.com/Luismorlan/chain_in_go/model"
	"github.com/Luismorlan/chain_in_go/utils"
	"github.com/jinzhu/copier"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

// A Ledger maintains the chain of sealed blocks and the pool of transactions
// waiting for the next one.
type Ledger struct {
	// The blockchain it needs to maintain.
	blockchain *model.Blockchain
	// Incoming transactions are added to this pool until they are mined.
	txPool *model.TransactionPool
	// Ledger config.
	config config.AppConfig
	// A single mutex for changing internal state.
	m sync.RWMutex
	// Held for the whole duration of a mining run, so only one block is
	// mined at a time.
	mining sync.Mutex
	// A unique identifier of this ledger, only used to tell instances apart
	// in logs and rendered files.
	uuid   string
	logger *zap.Logger
}

// Create a brand new ledger, which contains a genesis block in the chain.
func NewLedger(c config.AppConfig, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	myuuid := uuid.NewV4()
	return &Ledger{
		blockchain: model.NewBlockChain(utils.CreateGenesisBlock()),
		txPool:     model.NewTransactionPool(),
		config:     c,
		uuid:       myuuid.String(),
		logger:     logger.With(zap.String("ledger", myuuid.String())),
	}
}

func (l *Ledger) ID() string {
	return l.uuid
}

func (l *Ledger) Difficulty() int {
	return l.config.Difficulty
}

func (l *Ledger) MiningReward() float64 {
	return l.config.MiningReward
}

// LatestBlock returns the tail of the chain. There is always at least the
// genesis block.
func (l *Ledger) LatestBlock() *model.Block {
	l.m.RLock()
	defer l.m.RUnlock()
	return l.blockchain.Tail()
}

// Height is the index of the latest block.
func (l *Ledger) Height() int {
	l.m.RLock()
	defer l.m.RUnlock()
	return l.blockchain.Height()
}

// AddTransaction admits a transaction into the pending pool. It needs both
// addresses, a valid signature and a positive amount. A rejected transaction
// leaves the pool untouched.
func (l *Ledger) AddTransaction(tx *model.Transaction) error {
	if err := checkTransaction(tx); err != nil {
		l.logger.Debug("Transaction rejected", zap.Error(err))
		return err
	}

	l.m.Lock()
	defer l.m.Unlock()
	l.txPool.Add(tx)
	l.logger.Debug("Transaction added to pool",
		zap.String("to", tx.To),
		zap.Float64("amount", tx.Amount),
		zap.Int("pending", l.txPool.Len()))
	return nil
}

func checkTransaction(tx *model.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: transaction is nil", model.ErrAddress)
	}
	from, ok := tx.Sender()
	if !ok || from == "" || tx.To == "" {
		return model.ErrAddress
	}
	valid, err := utils.IsValidTransaction(tx)
	if err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("%w: signature does not verify", model.ErrInvalidTransaction)
	}
	if !(tx.Amount > 0) || math.IsInf(tx.Amount, 1) {
		return fmt.Errorf("%w: %v", model.ErrInvalidAmount, tx.Amount)
	}
	return nil
}

// MinePendingTransactions seals every pending transaction plus a reward for
// rewardAddress into a new block and appends it to the chain. It blocks until
// the proof-of-work search finishes. When the search is cancelled through ctx,
// or runs out of the configured iteration budget, nothing changes.
func (l *Ledger) MinePendingTransactions(ctx context.Context, rewardAddress string) (*model.Block, error) {
	l.mining.Lock()
	defer l.mining.Unlock()

	l.m.RLock()
	pending := l.txPool.Items()
	prevHash := l.blockchain.Tail().Hash
	height := l.blockchain.Height() + 1
	l.m.RUnlock()

	txs := append(pending, utils.CreateRewardTx(l.config.MiningReward, rewardAddress))
	block, err := utils.NewBlock(time.Now().UnixMilli(), txs, prevHash)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	// Mining is a really heavy task, no lock is held meanwhile.
	err = utils.Mine(ctx, block, l.config.Difficulty, utils.MineOptions{MaxIterations: l.config.MaxIterations})
	if err != nil {
		l.logger.Warn("Mining stopped", zap.Int("height", height), zap.Error(err))
		return nil, err
	}

	l.m.Lock()
	defer l.m.Unlock()
	l.blockchain.Append(block)
	// Transactions submitted while mining stay pending for the next block.
	l.txPool.DropFirst(len(pending))

	l.logger.Info("Block mined",
		zap.Int("height", height),
		zap.String("hash", block.Hash),
		zap.Int64("nonce", block.Nonce),
		zap.Int("txs", len(block.Transactions)),
		zap.Duration("took", time.Since(start)))
	return block, nil
}

// GetBalanceOfAddress replays the chain for a single address.
func (l *Ledger) GetBalanceOfAddress(address string) float64 {
	l.m.RLock()
	defer l.m.RUnlock()
	return utils.BalanceOf(l.blockchain.Blocks, address)
}

// GetBalances returns the balance of every address seen on the chain.
func (l *Ledger) GetBalances() model.Balances {
	l.m.RLock()
	defer l.m.RUnlock()
	b := model.NewBalances()
	utils.ApplyTransactions(l.blockchain.Blocks, b)
	return b
}

// GetAllTransactionsForWallet returns copies of every transaction address
// sent or received, in chain order.
func (l *Ledger) GetAllTransactionsForWallet(address string) []model.Transaction {
	l.m.RLock()
	matched := utils.TransactionsFor(l.blockchain.Blocks, address)
	l.m.RUnlock()

	txs := []model.Transaction{}
	if err := copier.Copy(&txs, &matched); err != nil {
		l.logger.Warn("Failed to copy wallet transactions", zap.String("address", address), zap.Error(err))
	}
	return txs
}

// Pending returns copies of the transactions waiting to be mined.
func (l *Ledger) Pending() []model.Transaction {
	l.m.RLock()
	items := l.txPool.Items()
	l.m.RUnlock()

	txs := []model.Transaction{}
	if err := copier.Copy(&txs, &items); err != nil {
		l.logger.Warn("Failed to copy pending transactions", zap.Error(err))
	}
	return txs
}

// Blocks returns a snapshot of the chain. The block headers are copies; the
// transactions are shared and must not be modified.
func (l *Ledger) Blocks() []model.Block {
	l.m.RLock()
	blocks := make([]*model.Block, len(l.blockchain.Blocks))
	copy(blocks, l.blockchain.Blocks)
	l.m.RUnlock()

	out := []model.Block{}
	if err := copier.Copy(&out, &blocks); err != nil {
		l.logger.Warn("Failed to copy blocks", zap.Error(err))
	}
	return out
}

// IsChainValid checks that:
// 0. The first block is the genesis block.
// 1. Every other block only holds valid transactions.
// 2. Every other block's hash matches its content.
// 3. Every other block points at the hash of the block before it, when
//    VerifyLinkage is set.
func (l *Ledger) IsChainValid() bool {
	l.m.RLock()
	defer l.m.RUnlock()

	blocks := l.blockchain.Blocks
	if len(blocks) == 0 || !utils.IsGenesisBlock(blocks[0]) {
		l.logger.Warn("Genesis block does not match")
		return false
	}
	for i := 1; i < len(blocks); i++ {
		current := blocks[i]
		if !utils.HasValidTransactions(current) {
			l.logger.Warn("Block has invalid transactions", zap.Int("index", i))
			return false
		}
		hash, err := utils.CalculateHash(current)
		if err != nil || hash != current.Hash {
			l.logger.Warn("Block hash is invalid", zap.Int("index", i))
			return false
		}
		if l.config.VerifyLinkage && current.PreviousHash != blocks[i-1].Hash {
			l.logger.Warn("Block does not link to its parent", zap.Int("index", i))
			return false
		}
	}
	return true
}
