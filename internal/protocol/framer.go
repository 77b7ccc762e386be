package protocol

import (
	"bytes"
	"io"
	"strings"
)

// Framer turns a raw byte stream into trimmed command lines. Partial
// lines are buffered until a terminator arrives; lines already in the
// buffer are drained before more input is requested. A non-terminated
// remainder at end of stream is discarded, never treated as a command.
type Framer struct {
	r   io.Reader
	buf bytes.Buffer
	tmp []byte
	eof bool
}

func NewFramer(r io.Reader) *Framer {
	return &Framer{r: r, tmp: make([]byte, 1024)}
}

// Next returns the next non-empty command line, or io.EOF when the
// stream ends. Whitespace-only lines are silently skipped.
func (f *Framer) Next() (string, error) {
	for {
		if line, ok := f.takeLine(); ok {
			if line == "" {
				continue
			}
			return line, nil
		}
		if f.eof {
			return "", io.EOF
		}
		n, err := f.r.Read(f.tmp)
		if n > 0 {
			f.buf.Write(f.tmp[:n])
		}
		if err == io.EOF {
			f.eof = true
		} else if err != nil {
			return "", err
		}
	}
}

func (f *Framer) takeLine() (string, bool) {
	data := f.buf.Bytes()
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return "", false
	}
	line := string(data[:i])
	f.buf.Next(i + 1)
	return strings.TrimSpace(line), true
}
