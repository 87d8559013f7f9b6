package inventory

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// ToolSpec is the authored description of a tool.
type ToolSpec struct {
	ID string `json:"id"`
	// Target is the world object type this tool harvests.
	Target string `json:"target"`
	// Missing is shown when the player faces a target without the tool in hand.
	Missing string `json:"missing"`
	// Key is the single key shortcut used by the text front-end.
	Key string `json:"key,omitempty"`
}

func (s *ToolSpec) Validate() error {
	el := errors.NewErrorList()
	if s.ID == "" {
		el.Add(fmt.Errorf("tool id must be set"))
	}
	if s.Target == "" {
		el.Add(fmt.Errorf("tool %s: target must be set", s.ID))
	}
	if s.Missing == "" {
		el.Add(fmt.Errorf("tool %s: missing text must be set", s.ID))
	}
	return el.Err()
}

type Tool struct {
	ToolSpec
	Acquired bool
	InHand   bool
}

// Ledger tracks the tools a player owns and which one, if any, is in hand.
// It also carries the journal and booklet flags that gate the quest and goal
// screens.
type Ledger struct {
	tools []*Tool

	Journal bool
	Booklet bool
}

// NewLedger builds a ledger with every tool present but not yet acquired.
func NewLedger(specs []ToolSpec) *Ledger {
	l := &Ledger{}
	for _, s := range specs {
		l.tools = append(l.tools, &Tool{ToolSpec: s})
	}
	return l
}

// Tools returns the tools in authored order.
func (l *Ledger) Tools() []*Tool {
	return l.tools
}

// Tool returns the tool with the given id or nil.
func (l *Ledger) Tool(id string) *Tool {
	for _, t := range l.tools {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ToolFor returns the tool that harvests objType or nil.
func (l *Ledger) ToolFor(objType string) *Tool {
	for _, t := range l.tools {
		if t.Target == objType {
			return t
		}
	}
	return nil
}

// Acquire marks a tool as owned.
func (l *Ledger) Acquire(id string) error {
	t := l.Tool(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTool, id)
	}
	t.Acquired = true
	return nil
}

// AcquireAll marks every tool and both screens as owned.
func (l *Ledger) AcquireAll() {
	for _, t := range l.tools {
		t.Acquired = true
	}
	l.Journal = true
	l.Booklet = true
}

// Grab toggles the named tool in hand if it is acquired. Every other tool is
// put away, so grabbing an unowned tool leaves the hand empty.
func (l *Ledger) Grab(id string) error {
	if l.Tool(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTool, id)
	}
	for _, t := range l.tools {
		if t.ID == id && t.Acquired {
			t.InHand = !t.InHand
		} else {
			t.InHand = false
		}
	}
	return nil
}

// Drop puts away any tool in hand.
func (l *Ledger) Drop() {
	for _, t := range l.tools {
		t.InHand = false
	}
}

// InHand returns the tool being held or nil.
func (l *Ledger) InHand() *Tool {
	for _, t := range l.tools {
		if t.InHand {
			return t
		}
	}
	return nil
}

// ReadyFor reports whether objType can be harvested right now. Types with no
// matching tool need none.
func (l *Ledger) ReadyFor(objType string) bool {
	t := l.ToolFor(objType)
	if t == nil {
		return true
	}
	return t.Acquired && t.InHand
}

// Acquired returns the ids of every owned tool, sorted.
func (l *Ledger) Acquired() []string {
	var ids []string
	for _, t := range l.tools {
		if t.Acquired {
			ids = append(ids, t.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
