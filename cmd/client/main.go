package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
)

// Interactive line client for the brokerage protocol: reads a command
// from stdin, sends it, prints the raw response, and exits after QUIT
// or SHUTDOWN.
func main() {
	addr := flag.String("addr", "127.0.0.1:6969", "server address")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}
	defer conn.Close()

	stdin := bufio.NewScanner(os.Stdin)
	resp := make([]byte, 4096)

	for {
		fmt.Print("Enter command (BUY/SELL/LIST/BALANCE/QUIT/SHUTDOWN): ")
		if !stdin.Scan() {
			return
		}
		msg := strings.TrimSpace(stdin.Text())
		if msg == "" {
			continue
		}

		if _, err := conn.Write([]byte(msg + "\n")); err != nil {
			fmt.Fprintln(os.Stderr, "send:", err)
			return
		}

		n, err := conn.Read(resp)
		if err != nil {
			fmt.Fprintln(os.Stderr, "receive:", err)
			return
		}
		out := string(resp[:n])
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}

		switch strings.ToUpper(msg) {
		case "QUIT", "SHUTDOWN":
			return
		}
	}
}
