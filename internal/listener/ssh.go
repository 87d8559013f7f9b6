package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"

	"github.com/pixil98/go-tilequest/internal/terminal"
)

// SshListener serves the game over ssh without authentication; the save
// slot is the only identity a player has. Clients that ask for a pty get a
// full-screen terminal, the rest a plain line protocol.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
	banner  string
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer, banner string) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
		banner:  banner,
	}
}

func (l *SshListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{NoClientAuth: true}
	if l.banner != "" {
		config.BannerCallback = func(ssh.ConnMetadata) string { return l.banner + "\n" }
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SshListener) Start(ctx context.Context) error {
	config := l.serverConfig()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	sessCtx, stopSessions := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		stopSessions()
		wg.Wait()
	}()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if ctx.Err() != nil {
			if conn != nil {
				_ = conn.Close()
			}
			return nil
		}
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.serveConn(sessCtx, conn, config)
		}()
	}
}

func (l *SshListener) serveConn(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer func() { _ = conn.Close() }()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer func() { _ = sshConn.Close() }()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "user", sshConn.User())

	stop := context.AfterFunc(ctx, func() { _ = sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.serveSession(ctx, newChan)
	}
}

// serveSession plays one game on a session channel once the client asks
// for a shell.
func (l *SshListener) serveSession(ctx context.Context, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer func() { _ = ch.Close() }()

	s := &sshSession{ch: ch, shell: make(chan struct{})}
	go s.serveRequests(requests)

	select {
	case <-s.shell:
	case <-ctx.Done():
		return
	}

	conn, closeConn := s.open(ctx)
	defer closeConn()

	l.cm.AcceptConnection(ctx, conn)
}

// ptyRequest is the payload of a "pty-req" request, RFC 4254 section 6.2.
type ptyRequest struct {
	Term          string
	Columns, Rows uint32
	Width, Height uint32
	Modes         string
}

// windowChange is the payload of a "window-change" request, RFC 4254
// section 6.7.
type windowChange struct {
	Columns, Rows uint32
	Width, Height uint32
}

type sshSession struct {
	ch ssh.Channel
	// shell is closed once the client has asked for a shell. term and tty
	// are set before that and not changed after.
	shell chan struct{}
	term  string
	tty   *terminal.SessionTty
}

func (s *sshSession) serveRequests(in <-chan *ssh.Request) {
	started := false
	for req := range in {
		ok := false
		switch req.Type {
		case "pty-req":
			var pr ptyRequest
			if !started && ssh.Unmarshal(req.Payload, &pr) == nil {
				s.term = pr.Term
				s.tty = terminal.NewSessionTty(s.ch, int(pr.Columns), int(pr.Rows))
				ok = true
			}
		case "window-change":
			var wc windowChange
			if s.tty != nil && ssh.Unmarshal(req.Payload, &wc) == nil {
				s.tty.Resize(int(wc.Columns), int(wc.Rows))
				ok = true
			}
		case "shell":
			ok = !started
		}

		if req.WantReply {
			_ = req.Reply(ok, nil)
		}
		if req.Type == "shell" && ok {
			started = true
			close(s.shell)
		}
	}
}

// open returns the connection the game talks to and a func to release it.
func (s *sshSession) open(ctx context.Context) (io.ReadWriter, func()) {
	if s.tty == nil {
		return newCRLFReadWriter(s.ch), func() {}
	}

	term, err := terminal.Open(s.tty, s.term)
	if err != nil {
		slog.WarnContext(ctx, "falling back to line mode", "term", s.term, "error", err)
		return newCRLFReadWriter(s.ch), func() {}
	}
	return term, func() { _ = term.Close() }
}
