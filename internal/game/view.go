package game

import (
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

type NPCView struct {
	Name   string
	Type   string
	Pos    world.Position
	Facing world.Direction
	Marker story.MarkerKind
}

type ObjectView struct {
	Name      string
	Type      string
	Footprint world.Rect
}

type DialogueView struct {
	Partner string
	// Lines is the visible window starting at Line.
	Lines []string
	Line  int
	Total int
	// Up and Down tell the display whether to draw scroll arrows.
	Up   bool
	Down bool
}

type ToolView struct {
	ID       string
	Key      string
	Acquired bool
	InHand   bool
}

// Frame is everything the display layer needs to draw one frame.
type Frame struct {
	Map     string
	Version string
	Width   int
	Height  int

	Player    world.Player
	NPCs      []NPCView
	Objects   []ObjectView
	Obstacles []world.Rect
	Gates     []world.Rect

	// CanInteract is set when the player faces someone or something and no
	// dialogue is open.
	CanInteract bool
	Dialogue    *DialogueView

	Quest      string
	QuestState story.State
	GoalIndex  int
	Tool       string
	Tools      []ToolView
	Journal    bool
	Booklet    bool
}

func (s *Session) View() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker := s.script.Marker()
	f := Frame{
		Map:        s.area.Name,
		Version:    s.area.Version,
		Width:      s.area.Width,
		Height:     s.area.Height,
		Player:     *s.player,
		Obstacles:  s.area.Obstacles,
		Quest:      s.script.Current().Name,
		QuestState: s.script.Current().State,
		GoalIndex:  s.script.GoalIndex(),
		Journal:    s.inv.Journal,
		Booklet:    s.inv.Booklet,
	}

	for _, n := range s.area.NPCs {
		v := NPCView{Name: n.Name, Type: n.Type, Pos: n.Pos, Facing: n.Facing}
		if n.Name == marker.NPC {
			v.Marker = marker.Kind
		}
		f.NPCs = append(f.NPCs, v)
	}
	for _, o := range s.area.Objects {
		f.Objects = append(f.Objects, ObjectView{Name: o.Name, Type: o.Type, Footprint: o.Footprint})
	}
	for _, g := range s.area.Gates {
		f.Gates = append(f.Gates, g.Footprint)
	}
	for _, t := range s.inv.Tools() {
		f.Tools = append(f.Tools, ToolView{ID: t.ID, Key: t.Key, Acquired: t.Acquired, InHand: t.InHand})
		if t.InHand {
			f.Tool = t.ID
		}
	}

	if d := s.dialogue; d != nil {
		f.Dialogue = &DialogueView{
			Partner: d.partner(),
			Lines:   d.window(s.window),
			Line:    d.line,
			Total:   len(d.lines),
			Up:      d.line > 0,
			Down:    d.line < len(d.lines)-1,
		}
	} else {
		f.CanInteract = s.area.FacedNPC(s.player) != nil || s.area.FacedObject(s.player) != nil
	}

	return f
}

// Journal is the quest journal screen.
type Journal struct {
	GoalTitle string
	// Active is false when no quest has been accepted.
	Active     bool
	Statement  string
	Collection bool
	Progress   int
	Required   int
	Validated  bool
	// Booklet is set when the goal screen can be opened from the journal.
	Booklet bool
}

// OpenJournal returns the journal, once the player has been given one.
func (s *Session) OpenJournal() (*Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inv.Journal {
		return nil, ErrLocked
	}

	q := s.script.Current()
	goals := s.script.Goals()
	j := &Journal{
		GoalTitle: goals[0].Title,
		Booklet:   s.inv.Booklet,
	}
	if q.State == story.StateInProgress {
		j.GoalTitle = goals[q.Goal].Title
		j.Active = true
		j.Statement = q.Statement
		if c := q.Collection; c != nil {
			j.Collection = true
			j.Progress = c.Progress
			j.Required = c.Required
			j.Validated = c.Validated
		}
	}
	return j, nil
}

type GoalCard struct {
	Index         int
	Title         string
	Explanation   string
	Advice        string
	Facts         []string
	Percentage    int
	HasPercentage bool
	Current       bool
}

// OpenGoals returns one card per goal, once the player has the booklet.
func (s *Session) OpenGoals() ([]GoalCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inv.Booklet {
		return nil, ErrLocked
	}

	var cards []GoalCard
	for _, g := range s.script.Goals() {
		pct, ok := g.Percentage()
		cards = append(cards, GoalCard{
			Index:         g.Index,
			Title:         g.Title,
			Explanation:   g.Explanation,
			Advice:        g.Advice,
			Facts:         g.Facts,
			Percentage:    pct,
			HasPercentage: ok && g.Index != 0,
			Current:       g.Index == s.script.GoalIndex(),
		})
	}
	return cards, nil
}
