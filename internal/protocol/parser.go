package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"brokerd/internal/domain"
	"brokerd/internal/engine"
)

// Parse tokenizes a trimmed line into a validated command. Unknown
// command names return engine.ErrInvalidCommand; arity and argument
// type problems return a *domain.ValidationError carrying the usage
// hint for the wire.
func Parse(line string) (*engine.Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, &domain.ValidationError{Message: "empty command"}
	}

	name := engine.CommandName(strings.ToUpper(parts[0]))
	args := parts[1:]

	switch name {
	case engine.CmdList, engine.CmdBalance, engine.CmdQuit, engine.CmdShutdown:
		if len(args) != 0 {
			return nil, usageError(name)
		}
		return &engine.Command{Name: name}, nil
	case engine.CmdBuy, engine.CmdSell:
		if len(args) != 4 {
			return nil, usageError(name)
		}
		return parseTrade(name, args)
	}
	return nil, engine.ErrInvalidCommand
}

func parseTrade(name engine.CommandName, args []string) (*engine.Command, error) {
	symbol := strings.ToUpper(args[0])

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return nil, &domain.ValidationError{Message: "invalid amount: must be a positive number"}
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil || price < 0 {
		return nil, &domain.ValidationError{Message: "invalid price: must be a non-negative number"}
	}
	userID, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid user id: must be an integer"}
	}

	return &engine.Command{
		Name:   name,
		Symbol: symbol,
		Amount: amount,
		Price:  price,
		UserID: userID,
	}, nil
}

func usageError(name engine.CommandName) error {
	usage := string(name)
	if name == engine.CmdBuy || name == engine.CmdSell {
		usage = fmt.Sprintf("%s <SYMBOL> <AMOUNT> <PRICE> <USER_ID>", name)
	}
	return &domain.ValidationError{Message: "Usage: " + usage}
}
