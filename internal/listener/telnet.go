package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/sirupsen/logrus"
)

type TelnetListener struct {
	port   uint16
	cm     *ConnectionManager
	logger logrus.FieldLogger
}

func NewTelnetListener(port uint16, cm *ConnectionManager, logger logrus.FieldLogger) *TelnetListener {
	return &TelnetListener{
		port:   port,
		cm:     cm,
		logger: logger.WithField("listener", "telnet"),
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())

	handler := &telnetHandler{
		accept:      l.cm.AcceptConnection,
		logger:      l.logger,
		connCtx:     connCtx,
		cancelConns: cancelConns,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), handler)
	l.logger.WithField("port", l.port).Info("listening for telnet")

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
		}
	}()

	err := svr.ListenAndServe()
	if err != nil {
		cancelConns()
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg          sync.WaitGroup
	accept      func(context.Context, io.ReadWriter)
	logger      logrus.FieldLogger
	connCtx     context.Context
	cancelConns context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.WithError(err).Warn("closing telnet connection")
		}
	}()

	h.logger.Debug("telnet connection opened")
	h.accept(h.connCtx, conn)
	h.logger.Debug("telnet connection closed")
}

// Stop cancels every open connection and waits for their sessions to end.
func (h *telnetHandler) Stop() {
	h.cancelConns()
	h.wg.Wait()
}
