package ledger

import (
	"context"

	"brokerd/internal/domain"
)

// TradeSide distinguishes the two ledger-mutating operations.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// TradeResult reports the post-commit state of a trade.
type TradeResult struct {
	Symbol      string
	NewQuantity float64
	NewBalance  float64
}

// Store is the ledger collaborator consumed by the trading engine.
// All mutations are durable before the call returns.
type Store interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUserBalance(ctx context.Context, id int64, newBalance float64) error
	// GetHolding returns (nil, nil) when the holding does not exist.
	GetHolding(ctx context.Context, userID int64, symbol string) (*domain.Holding, error)
	UpsertHolding(ctx context.Context, userID int64, symbol string, deltaQuantity float64) (*domain.Holding, error)
	ListHoldings(ctx context.Context, userID int64) ([]domain.Holding, error)

	// ExecuteTrade applies the cash delta and the holding delta as one
	// transaction, records a TradeEvent audit row, and rolls everything
	// back on any failure. Callers perform balance/quantity checks
	// before calling; the store still refuses deltas that would drive
	// either side negative.
	ExecuteTrade(ctx context.Context, side TradeSide, userID int64, symbol string, amount, price float64) (*TradeResult, error)
}
