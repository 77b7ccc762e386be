package protocol

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader yields its chunks one Read at a time to simulate bytes
// arriving over a socket.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func readAll(t *testing.T, f *Framer) []string {
	t.Helper()
	var lines []string
	for {
		line, err := f.Next()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestFramer_SingleLine(t *testing.T) {
	f := NewFramer(strings.NewReader("BALANCE\n"))
	assert.Equal(t, []string{"BALANCE"}, readAll(t, f))
}

func TestFramer_MultipleLinesInOneChunk(t *testing.T) {
	f := NewFramer(strings.NewReader("LIST\nBALANCE\nQUIT\n"))
	assert.Equal(t, []string{"LIST", "BALANCE", "QUIT"}, readAll(t, f))
}

func TestFramer_PartialLineAcrossChunks(t *testing.T) {
	f := NewFramer(&chunkReader{chunks: []string{"BUY AA", "PL 5 10 1\nBAL", "ANCE\n"}})
	assert.Equal(t, []string{"BUY AAPL 5 10 1", "BALANCE"}, readAll(t, f))
}

func TestFramer_TrimsWhitespaceAndCR(t *testing.T) {
	f := NewFramer(strings.NewReader("  LIST \r\n\tBALANCE\t\n"))
	assert.Equal(t, []string{"LIST", "BALANCE"}, readAll(t, f))
}

func TestFramer_SkipsEmptyLines(t *testing.T) {
	f := NewFramer(strings.NewReader("\n   \n\r\nLIST\n\n"))
	assert.Equal(t, []string{"LIST"}, readAll(t, f))
}

func TestFramer_DiscardsUnterminatedRemainder(t *testing.T) {
	f := NewFramer(strings.NewReader("LIST\nBALANC"))
	assert.Equal(t, []string{"LIST"}, readAll(t, f))
}

func TestFramer_EmptyStream(t *testing.T) {
	f := NewFramer(strings.NewReader(""))
	assert.Empty(t, readAll(t, f))
}
