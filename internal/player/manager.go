package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/saves"
	"github.com/pixil98/go-tilequest/internal/story"
)

// Manager runs player connections and keeps the live sessions so the frame
// driver can tick them.
type Manager struct {
	book       *story.Book
	maps       game.MapSource
	saves      saves.Store
	cmdHandler *commands.Handler

	notifier  game.Notifier
	cheats    bool
	lineWidth int

	slotFlow *slotFlow

	mu       sync.Mutex
	sessions map[uuid.UUID]*game.Session
}

func NewManager(book *story.Book, maps game.MapSource, st saves.Store, cmd *commands.Handler, opts ...ManagerOpt) *Manager {
	m := &Manager{
		book:       book,
		maps:       maps,
		saves:      st,
		cmdHandler: cmd,
		lineWidth:  game.DefaultLineWidth,
		slotFlow:   &slotFlow{saves: st},
		sessions:   map[uuid.UUID]*game.Session{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()

	slog.InfoContext(ctx, "player manager stopping", "sessions", m.Sessions())
	return nil
}

// Tick runs one frame of every live session.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	live := slices.Collect(maps.Values(m.sessions))
	m.mu.Unlock()

	for _, s := range live {
		if err := s.Tick(ctx); err != nil {
			return fmt.Errorf("ticking session %s: %w", s.ID(), err)
		}
	}
	return nil
}

// Sessions is the number of games being played.
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// RunSession takes a connection from slot selection through to quitting.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	lc := newLineConn(conn)

	choice, err := m.slotFlow.Run(ctx, lc)
	if err != nil {
		return fmt.Errorf("choosing save slot: %w", err)
	}

	snap := choice.snap
	if snap == nil {
		snap = game.NewGameSnapshot(m.book)
		snap.Player.Avatar = choice.avatar
	}

	sess, err := m.restore(ctx, snap)
	if err != nil {
		return err
	}

	// Two connections can play the same slot, so the registry is keyed by
	// connection rather than by the save's id.
	connID := uuid.New()
	m.add(connID, sess)
	defer m.remove(connID)

	slog.InfoContext(ctx, "session started", "conn", connID, "session", sess.ID(), "slot", choice.slot, "resumed", choice.snap != nil)

	p := &Player{
		conn:       lc,
		session:    sess,
		slot:       choice.slot,
		book:       m.book,
		saves:      m.saves,
		cmdHandler: m.cmdHandler,
	}
	err = p.Play(ctx)

	slog.InfoContext(ctx, "session ended", "conn", connID, "session", sess.ID())
	return err
}

func (m *Manager) restore(ctx context.Context, snap *game.Snapshot) (*game.Session, error) {
	sess, err := game.RestoreSession(ctx, m.book, snap, m.maps,
		game.WithNotifier(m.notifier),
		game.WithCheats(m.cheats),
		game.WithLineWidth(m.lineWidth),
	)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	var width int
	ok, err := sess.Preference(commands.PrefLineWidth, &width)
	if err != nil {
		slog.WarnContext(ctx, "ignoring saved line width", "session", sess.ID(), "error", err)
	} else if ok {
		sess.SetLineWidth(width)
	}

	return sess, nil
}

func (m *Manager) add(id uuid.UUID, s *game.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = s
}

func (m *Manager) remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}
