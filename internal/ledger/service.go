package ledger

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"marketledger/internal/logging"
	"marketledger/internal/metrics"
)

// Service owns the process-wide ledger State. Calls are serialized; an update
// runs against the current State and its result is committed only if the
// call does not trap.
type Service struct {
	mu     sync.RWMutex
	state  State
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logging.OrNop(logger)}
}

func (s *Service) InitializeSupply(name, originAddress, ticker string, totalSupply uint64) bool {
	_ = s.update("initialize_supply", func(st State) State {
		return st.InitializeSupply(name, originAddress, ticker, totalSupply)
	})
	s.logger.Info("ledger.initialized",
		zap.String("name", name),
		zap.String("ticker", ticker),
		zap.String("origin", originAddress),
		zap.Uint64("total_supply", totalSupply),
	)
	return true
}

// Transfer returns a *TrapError when from holds less than amount.
func (s *Service) Transfer(from, to string, amount uint64) (bool, error) {
	err := s.update("transfer", func(st State) State {
		return st.Transfer(from, to, amount)
	})
	if err != nil {
		s.logger.Error("ledger.transfer_trapped",
			zap.String("from", from),
			zap.String("to", to),
			zap.Uint64("amount", amount),
			zap.Error(err),
		)
		return false, err
	}
	s.logger.Info("ledger.transferred",
		zap.String("from", from),
		zap.String("to", to),
		zap.Uint64("amount", amount),
	)
	return true, nil
}

func (s *Service) Balance(address string) uint64 {
	return s.read("balance").Balance(address)
}

func (s *Service) Ticker() string {
	return s.read("get_ticker").Ticker
}

func (s *Service) Name() string {
	return s.read("get_name").Name
}

func (s *Service) TotalSupply() uint64 {
	return s.read("get_total_supply").TotalSupply
}

// Accounts lists every known account ordered by address.
func (s *Service) Accounts() []Account {
	return s.read("accounts").Accounts()
}

func (s *Service) read(op string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.IncLedgerOp(op, "ok")
	return s.state
}

func (s *Service) update(op string, fn func(State) State) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		result := "ok"
		var trapErr *TrapError
		if errors.As(err, &trapErr) {
			result = "trapped"
		}
		metrics.IncLedgerOp(op, result)
	}()
	defer recoverTrap(&err)

	s.state = fn(s.state)
	return nil
}
