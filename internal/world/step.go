package world

// StepResult describes the outcome of Area.Step.
type StepResult int

const (
	// StepMoved means the player now stands on the new tile.
	StepMoved StepResult = iota
	// StepBlocked means the player turned but could not move.
	StepBlocked
	// StepGate means the player walked through a gate; the caller loads the
	// destination map.
	StepGate
	// StepIgnored means the player is in dialogue and nothing changed.
	StepIgnored
)

func (r StepResult) String() string {
	switch r {
	case StepMoved:
		return "moved"
	case StepBlocked:
		return "blocked"
	case StepGate:
		return "gate"
	case StepIgnored:
		return "ignored"
	}
	return "unknown"
}

// Step attempts to move the player one tile. The gate is only non-nil for
// StepGate.
func (a *Area) Step(p *Player, dx, dy int) (StepResult, *Gate, error) {
	dir, ok := DirectionOf(dx, dy)
	if !ok {
		return StepBlocked, nil, ErrInvalidStep
	}

	if p.Interacting {
		return StepIgnored, nil, nil
	}

	for _, g := range a.Gates {
		if g.Exit == dir && g.Footprint.Contains(p.Pos) {
			return StepGate, g, nil
		}
	}

	p.Facing = dir
	next := p.Pos.Add(dx, dy)
	if a.Blocked(next) {
		return StepBlocked, nil, nil
	}

	p.Pos = next
	p.Steps = (p.Steps + 1) % 4
	return StepMoved, nil, nil
}
