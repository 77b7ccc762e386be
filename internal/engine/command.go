package engine

// CommandName is a canonicalized (uppercase) command keyword.
type CommandName string

const (
	CmdBuy      CommandName = "BUY"
	CmdSell     CommandName = "SELL"
	CmdList     CommandName = "LIST"
	CmdBalance  CommandName = "BALANCE"
	CmdQuit     CommandName = "QUIT"
	CmdShutdown CommandName = "SHUTDOWN"
)

// Command is a fully validated request. Symbol is uppercase; Amount is
// strictly positive and Price non-negative for BUY/SELL.
type Command struct {
	Name   CommandName
	Symbol string
	Amount float64
	Price  float64
	UserID int64
}
