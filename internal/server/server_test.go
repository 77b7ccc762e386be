package server

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"brokerd/internal/domain"
	"brokerd/internal/engine"
	"brokerd/internal/ledger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) (net.Listener, chan error) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Holding{}, &domain.TradeEvent{}))
	require.NoError(t, db.Create(&domain.User{ID: 1, Name: "John Doe", CashBalance: 100.00}).Error)

	srv := New(engine.New(ledger.NewGormStore(db), 1), nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), ln) }()
	return ln, done
}

// sendLine writes one command and reads the status line plus the given
// number of body lines. The protocol is deterministic, so each test
// states how many body lines it expects.
func sendLine(t *testing.T, conn net.Conn, r *bufio.Reader, line string, bodyLines int) []string {
	t.Helper()
	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)

	out := make([]string, 0, bodyLines+1)
	for i := 0; i <= bodyLines; i++ {
		resp, err := r.ReadString('\n')
		require.NoError(t, err)
		out = append(out, strings.TrimRight(resp, "\n"))
	}
	return out
}

func waitShutdown(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after SHUTDOWN")
	}
}

func TestServe_FullScenario(t *testing.T) {
	ln, done := setupServer(t)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	r := bufio.NewReader(conn)

	resp := sendLine(t, conn, r, "BUY AAPL 5 10 1", 1)
	assert.Equal(t, "200 OK", resp[0])
	assert.Equal(t, "BOUGHT: New balance: 5 AAPL. USD balance $50.00", resp[1])

	resp = sendLine(t, conn, r, "SELL AAPL 3 10 1", 1)
	assert.Equal(t, "200 OK", resp[0])
	assert.Equal(t, "SOLD: New balance: 2 AAPL. USD balance $80.00", resp[1])

	resp = sendLine(t, conn, r, "SELL AAPL 10 10 1", 1)
	assert.Equal(t, "403 message format error", resp[0])
	assert.Equal(t, "not enough stock balance", resp[1])

	resp = sendLine(t, conn, r, "BALANCE", 1)
	assert.Equal(t, "200 OK", resp[0])
	assert.Equal(t, "Balance for user John Doe: $80.00", resp[1])

	resp = sendLine(t, conn, r, "LIST", 2)
	assert.Equal(t, "200 OK", resp[0])
	assert.Equal(t, "The list of 1 record(s) for user 1:", resp[1])
	assert.Equal(t, "1 AAPL 2 1", resp[2])

	resp = sendLine(t, conn, r, "BUY AAPL -1 10 1", 1)
	assert.Equal(t, "403 message format error", resp[0])
	assert.Equal(t, "invalid amount: must be a positive number", resp[1])

	resp = sendLine(t, conn, r, "HODL", 0)
	assert.Equal(t, "400 invalid command", resp[0])

	resp = sendLine(t, conn, r, "SHUTDOWN", 0)
	assert.Equal(t, "200 OK", resp[0])

	waitShutdown(t, done)
}

func TestServe_QuitClosesOnlySession(t *testing.T) {
	ln, done := setupServer(t)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	r := bufio.NewReader(conn)

	resp := sendLine(t, conn, r, "QUIT", 0)
	assert.Equal(t, "200 OK", resp[0])
	_ = conn.Close()

	// the accept loop keeps serving
	conn2, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	r2 := bufio.NewReader(conn2)
	resp = sendLine(t, conn2, r2, "BALANCE", 1)
	assert.Equal(t, "200 OK", resp[0])

	resp = sendLine(t, conn2, r2, "SHUTDOWN", 0)
	assert.Equal(t, "200 OK", resp[0])
	_ = conn2.Close()
	waitShutdown(t, done)
}

func TestServe_ClientDisconnectKeepsServing(t *testing.T) {
	ln, done := setupServer(t)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	// half-written command is discarded on disconnect
	_, err = conn.Write([]byte("BUY AAPL 5"))
	require.NoError(t, err)
	_ = conn.Close()

	conn2, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	r2 := bufio.NewReader(conn2)
	resp := sendLine(t, conn2, r2, "BALANCE", 1)
	assert.Equal(t, "200 OK", resp[0])
	assert.Equal(t, "Balance for user John Doe: $100.00", resp[1])

	sendLine(t, conn2, r2, "SHUTDOWN", 0)
	_ = conn2.Close()
	waitShutdown(t, done)
}

func TestServe_MultipleCommandsInOneWrite(t *testing.T) {
	ln, done := setupServer(t)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	r := bufio.NewReader(conn)

	_, err = conn.Write([]byte("BUY AAPL 2 10 1\nBALANCE\n"))
	require.NoError(t, err)

	lines := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		s, err := r.ReadString('\n')
		require.NoError(t, err)
		lines = append(lines, strings.TrimRight(s, "\n"))
	}
	assert.Equal(t, "200 OK", lines[0])
	assert.Equal(t, "BOUGHT: New balance: 2 AAPL. USD balance $80.00", lines[1])
	assert.Equal(t, "200 OK", lines[2])
	assert.Equal(t, "Balance for user John Doe: $80.00", lines[3])

	sendLine(t, conn, r, "SHUTDOWN", 0)
	waitShutdown(t, done)
}
