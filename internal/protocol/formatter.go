package protocol

import (
	"strings"

	"brokerd/internal/engine"
)

// Wire status lines. The formatter is the only place engine results
// become status strings.
const (
	statusOK             = "200 OK"
	statusFormatError    = "403 message format error"
	statusInvalidCommand = "400 invalid command"
)

// Render serializes a result as a status line plus body lines, each
// newline-terminated. Body content is engine-decided and passed
// through untouched.
func Render(res *engine.Result) []byte {
	var b strings.Builder
	switch res.Kind {
	case engine.KindOK:
		b.WriteString(statusOK)
	case engine.KindInvalidCommand:
		b.WriteString(statusInvalidCommand)
	default:
		b.WriteString(statusFormatError)
	}
	b.WriteByte('\n')
	for _, line := range res.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
