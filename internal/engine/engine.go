package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"brokerd/internal/domain"
	"brokerd/internal/ledger"

	"github.com/rs/zerolog/log"
)

// Engine executes commands against the ledger store. Each command is
// an independent transaction; the mutex serializes read-check-mutate
// so a concurrent host cannot overdraft or oversell.
type Engine struct {
	Store         ledger.Store
	DefaultUserID int64

	mu sync.Mutex
}

func New(store ledger.Store, defaultUserID int64) *Engine {
	return &Engine{Store: store, DefaultUserID: defaultUserID}
}

// Execute runs one command and returns its structured result. Errors
// never escape; they are folded into the Result.
func (e *Engine) Execute(ctx context.Context, cmd *Command) *Result {
	switch cmd.Name {
	case CmdBalance:
		return e.balance(ctx)
	case CmdList:
		return e.list(ctx)
	case CmdBuy, CmdSell:
		return e.trade(ctx, cmd)
	case CmdQuit:
		return &Result{Kind: KindOK, CloseSession: true}
	case CmdShutdown:
		return &Result{Kind: KindOK, CloseSession: true, Shutdown: true}
	}
	return ErrorResult(ErrInvalidCommand)
}

func (e *Engine) balance(ctx context.Context) *Result {
	user, err := e.Store.GetUser(ctx, e.DefaultUserID)
	if err != nil {
		return ErrorResult(err)
	}
	return &Result{
		Kind:  KindOK,
		Lines: []string{fmt.Sprintf("Balance for user %s: $%.2f", user.Name, user.CashBalance)},
	}
}

func (e *Engine) list(ctx context.Context) *Result {
	user, err := e.Store.GetUser(ctx, e.DefaultUserID)
	if err != nil {
		return ErrorResult(err)
	}
	holdings, err := e.Store.ListHoldings(ctx, user.ID)
	if err != nil {
		return ErrorResult(err)
	}
	if len(holdings) == 0 {
		return &Result{Kind: KindOK, Lines: []string{"(no stocks)"}}
	}
	lines := make([]string, 0, len(holdings)+1)
	lines = append(lines, fmt.Sprintf("The list of %d record(s) for user %d:", len(holdings), user.ID))
	for _, h := range holdings {
		lines = append(lines, fmt.Sprintf("%d %s %s %d", h.ID, h.Symbol, FormatQuantity(h.Quantity), h.UserID))
	}
	return &Result{Kind: KindOK, Lines: lines}
}

func (e *Engine) trade(ctx context.Context, cmd *Command) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.Store.GetUser(ctx, cmd.UserID)
	if err != nil {
		return ErrorResult(err)
	}

	side := ledger.SideBuy
	verb := "BOUGHT"
	if cmd.Name == CmdSell {
		side = ledger.SideSell
		verb = "SOLD"
	}

	// Check before mutating so a rejection leaves no partial state.
	if side == ledger.SideBuy {
		cost := cmd.Amount * cmd.Price
		if !domain.GTE(user.CashBalance, cost) {
			return ErrorResult(domain.ErrInsufficientBalance)
		}
	} else {
		holding, err := e.Store.GetHolding(ctx, user.ID, cmd.Symbol)
		if err != nil {
			return ErrorResult(err)
		}
		if holding == nil || !domain.GTE(holding.Quantity, cmd.Amount) {
			return ErrorResult(domain.ErrInsufficientHoldings)
		}
	}

	trade, err := e.Store.ExecuteTrade(ctx, side, user.ID, cmd.Symbol, cmd.Amount, cmd.Price)
	if err != nil {
		log.Warn().Err(err).
			Str("side", string(side)).
			Str("symbol", cmd.Symbol).
			Int64("user_id", cmd.UserID).
			Msg("trade rejected")
		return ErrorResult(err)
	}

	return &Result{
		Kind: KindOK,
		Lines: []string{fmt.Sprintf("%s: New balance: %s %s. USD balance $%.2f",
			verb, FormatQuantity(trade.NewQuantity), trade.Symbol, trade.NewBalance)},
	}
}

// FormatQuantity renders a holding quantity in natural decimal form,
// never scientific notation.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
