package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/Luismorlan/chain_in_go/commands"
	"github.com/Luismorlan/chain_in_go/model"
	"github.com/Luismorlan/chain_in_go/utils"
	"github.com/Luismorlan/chain_in_go/visualize"
	"github.com/Luismorlan/chain_in_go/wallet"
	"go.uber.org/zap"
)

// Server runs driver commands against a ledger on behalf of one wallet.
// Mining runs in the background so it can be stopped; everything else is
// answered right away through print.
type Server struct {
	ledger *Ledger
	wallet *wallet.Wallet
	logger *zap.Logger
	print  func(string)
	// Where rendered chains are written.
	renderDir string

	// Guards the running mining task.
	m      sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewServer(l *Ledger, w *wallet.Wallet, logger *zap.Logger, print func(string)) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		ledger:    l,
		wallet:    w,
		logger:    logger,
		print:     print,
		renderDir: os.TempDir(),
	}
	return s
}

// Serve handles commands until ctx is done or cmd is closed.
func (s *Server) Serve(ctx context.Context, cmd <-chan commands.Command) {
	for {
		select {
		case <-ctx.Done():
			s.stopMining()
			return
		case c, ok := <-cmd:
			if !ok {
				s.stopMining()
				return
			}
			if err := s.HandleCommand(ctx, c); err != nil {
				s.print(err.Error())
			}
		}
	}
}

// HandleCommand runs one command. Only MINE returns before its work is done.
func (s *Server) HandleCommand(ctx context.Context, c commands.Command) error {
	s.logger.Debug("Handling command", zap.Int("op", int(c.Op)), zap.Strings("args", c.Args))
	if c.IsDefault() {
		return fmt.Errorf("unrecognized command: %v", c)
	}
	if !c.IsValid() {
		return fmt.Errorf("invalid command: %v", c)
	}
	switch c.Op {
	case commands.MINE:
		n := 1
		if len(c.Args) == 1 {
			var err error
			if n, err = strconv.Atoi(c.Args[0]); err != nil {
				return fmt.Errorf("%s is not a valid number of blocks", c.Args[0])
			}
		}
		return s.startMining(ctx, n)
	case commands.STOP:
		if !s.stopMining() {
			return errors.New("no running mining task to stop")
		}
		return nil
	case commands.TRANSFER:
		value, err := strconv.ParseFloat(c.Args[1], 64)
		if err != nil {
			return err
		}
		tx, err := s.wallet.TransferMoney(s.ledger, c.Args[0], value)
		if err != nil {
			return err
		}
		s.print(fmt.Sprintf("transfer of %s to %s is pending, digest %s",
			utils.FormatAmount(tx.Amount), tx.To, utils.HashTransaction(tx)))
	case commands.BALANCE:
		addr := s.addressArg(c)
		s.print(fmt.Sprintf("balance of %s: %s", addr, utils.FormatAmount(s.ledger.GetBalanceOfAddress(addr))))
	case commands.HISTORY:
		addr := s.addressArg(c)
		txs := s.ledger.GetAllTransactionsForWallet(addr)
		s.print(fmt.Sprintf("%d transactions for %s", len(txs), addr))
		for i := range txs {
			s.print(describe(&txs[i]))
		}
	case commands.PENDING:
		txs := s.ledger.Pending()
		s.print(fmt.Sprintf("%d pending transactions", len(txs)))
		for i := range txs {
			s.print(describe(&txs[i]))
		}
	case commands.VALIDATE:
		s.print(fmt.Sprintf("chain of height %d valid: %t", s.ledger.Height(), s.ledger.IsChainValid()))
	case commands.SHOW:
		d, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return fmt.Errorf("%s is not a valid number for depth", c.Args[0])
		}
		out, err := visualize.RenderPNG(s.ledger.Blocks(), d, s.ledger.ID(), s.renderDir)
		if err != nil {
			return err
		}
		s.print("chain rendered to " + out)
	case commands.MY_PK:
		s.print(s.wallet.GetPublicKey())
	default:
		return fmt.Errorf("unrecognized command: %v", c)
	}
	return nil
}

func (s *Server) addressArg(c commands.Command) string {
	if len(c.Args) == 1 {
		return c.Args[0]
	}
	return s.wallet.GetPublicKey()
}

func describe(tx *model.Transaction) string {
	from, ok := tx.Sender()
	if !ok {
		from = "(issued)"
	}
	return fmt.Sprintf("  %s -> %s: %s", from, tx.To, utils.FormatAmount(tx.Amount))
}

// startMining mines n blocks in the background, rewarding the wallet.
func (s *Server) startMining(parent context.Context, n int) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.done != nil {
		return errors.New("mining has already been started")
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer func() {
			cancel()
			s.m.Lock()
			s.cancel, s.done = nil, nil
			s.m.Unlock()
			close(done)
		}()
		for i := 0; i < n; i++ {
			block, err := s.ledger.MinePendingTransactions(ctx, s.wallet.GetPublicKey())
			if err != nil {
				s.print(err.Error())
				return
			}
			s.print(fmt.Sprintf("block mined: %s (nonce %d, %d txs)", block.Hash, block.Nonce, len(block.Transactions)))
		}
	}()
	return nil
}

// stopMining cancels the running task and waits for it. It reports whether
// there was one.
func (s *Server) stopMining() bool {
	s.m.Lock()
	cancel, done := s.cancel, s.done
	s.m.Unlock()
	if done == nil {
		return false
	}
	cancel()
	<-done
	return true
}

// Wait blocks until the running mining task, if any, is finished.
func (s *Server) Wait() {
	s.m.Lock()
	done := s.done
	s.m.Unlock()
	if done != nil {
		<-done
	}
}
