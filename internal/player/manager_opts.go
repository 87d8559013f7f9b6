package player

import "github.com/pixil98/go-tilequest/internal/game"

type ManagerOpt func(*Manager)

// WithNotifier sets where sessions announce completed goals.
func WithNotifier(n game.Notifier) ManagerOpt {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithCheats lets players warp between quests.
func WithCheats(enabled bool) ManagerOpt {
	return func(m *Manager) {
		m.cheats = enabled
	}
}

// WithLineWidth sets the default dialogue wrap width.
func WithLineWidth(width int) ManagerOpt {
	return func(m *Manager) {
		if width > 0 {
			m.lineWidth = width
		}
	}
}
