package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// SessionRunner plays one connection through to the end.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections to the game, turning players
// away once maxConns are playing.
type ConnectionManager struct {
	runner   SessionRunner
	maxConns int32
	active   atomic.Int32
}

func NewConnectionManager(runner SessionRunner, maxConns int) *ConnectionManager {
	return &ConnectionManager{
		runner:   runner,
		maxConns: int32(maxConns),
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.active.Add(1)
	defer m.active.Add(-1)

	if m.maxConns > 0 && n > m.maxConns {
		slog.WarnContext(ctx, "refusing connection, server full", "active", n-1)
		_, _ = fmt.Fprintln(conn, "The server is full, please try again later.")
		return
	}

	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}

// Active is the number of connections currently being served.
func (m *ConnectionManager) Active() int {
	return int(m.active.Load())
}
