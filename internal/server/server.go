package server

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"brokerd/internal/engine"
	"brokerd/internal/protocol"
	"brokerd/internal/stats"

	"github.com/rs/zerolog/log"
)

// Server owns the accept loop and per-connection sessions. Connections
// are served one at a time: the loop blocks until the current session
// ends before accepting the next, matching the single in-flight
// command assumption of the engine.
type Server struct {
	Engine *engine.Engine
	Stats  *stats.Recorder
}

func New(eng *engine.Engine, rec *stats.Recorder) *Server {
	return &Server{Engine: eng, Stats: rec}
}

// Serve accepts connections until a SHUTDOWN command arrives or the
// listener is closed. It returns nil on graceful shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	for {
		log.Info().Str("addr", ln.Addr().String()).Msg("waiting for client connection")
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")
		shutdown := s.serveConn(ctx, conn)
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client session ended")
		_ = conn.Close()

		if shutdown {
			log.Info().Msg("shutdown requested, no longer accepting connections")
			return nil
		}
	}
}

// serveConn runs one session: framed lines through parser, engine and
// formatter until QUIT, SHUTDOWN or end of stream. The returned flag
// reports whether SHUTDOWN was requested.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) bool {
	framer := protocol.NewFramer(conn)
	for {
		line, err := framer.Next()
		if err != nil {
			if err != io.EOF {
				log.Warn().Err(err).Msg("connection read failed")
			}
			return false
		}

		start := time.Now()
		res := s.handleLine(ctx, line)
		elapsed := time.Since(start)

		log.Info().
			Str("command", line).
			Bool("ok", res.Kind == engine.KindOK).
			Int64("ms", elapsed.Milliseconds()).
			Msg("command handled")
		s.Stats.Record(line, res.Kind == engine.KindOK, elapsed)

		if _, err := conn.Write(protocol.Render(res)); err != nil {
			log.Warn().Err(err).Msg("connection write failed")
			return false
		}
		if res.CloseSession {
			return res.Shutdown
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line string) *engine.Result {
	cmd, err := protocol.Parse(line)
	if err != nil {
		return engine.ErrorResult(err)
	}
	return s.Engine.Execute(ctx, cmd)
}
