package engine

import (
	"errors"

	"brokerd/internal/domain"
)

// ResultKind tags the outcome of a command. The formatter owns the
// mapping to wire status lines; nothing else stringifies status codes.
type ResultKind int

const (
	KindOK ResultKind = iota
	KindFormatError
	KindInvalidCommand
)

// Result is the structured outcome of one executed command.
type Result struct {
	Kind  ResultKind
	Lines []string

	// CloseSession ends the current connection (QUIT, SHUTDOWN).
	CloseSession bool
	// Shutdown additionally stops the accept loop (SHUTDOWN).
	Shutdown bool
}

// ErrInvalidCommand marks an unrecognized command name.
var ErrInvalidCommand = errors.New("invalid command")

// ErrorResult maps a parse or execution error to a Result. Domain and
// validation errors keep the connection open; store failures surface
// the same way and never kill the session.
func ErrorResult(err error) *Result {
	if errors.Is(err, ErrInvalidCommand) {
		return &Result{Kind: KindInvalidCommand}
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &Result{Kind: KindFormatError, Lines: []string{verr.Message}}
	}
	return &Result{Kind: KindFormatError, Lines: []string{err.Error()}}
}
