package game

type SessionOpt func(*Session)

// WithNotifier sets where goal completions are announced.
func WithNotifier(n Notifier) SessionOpt {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLineWidth sets the width dialogue text is wrapped to.
func WithLineWidth(width int) SessionOpt {
	return func(s *Session) {
		s.lineWidth = width
	}
}

// WithWindow sets how many dialogue lines a frame shows at once.
func WithWindow(lines int) SessionOpt {
	return func(s *Session) {
		s.window = lines
	}
}

// WithCheats enables quest warping.
func WithCheats(enabled bool) SessionOpt {
	return func(s *Session) {
		s.cheats = enabled
	}
}
