package game

import "github.com/pixil98/go-tilequest/internal/world"

// dialogue is an open text box. Exactly one of npc and object is set.
type dialogue struct {
	npc    *world.NPC
	object *world.Object

	// harvest is decided when the box opens; the object is queued for removal
	// at that point and harvested when the box closes.
	harvest bool

	lines []string
	line  int
}

func (d *dialogue) partner() string {
	if d.npc != nil {
		return d.npc.Name
	}
	return d.object.Name
}

// advance moves to the next line. It returns true when the reader moved past
// the last line.
func (d *dialogue) advance() bool {
	d.line++
	return d.line >= len(d.lines)
}

// window returns up to n lines starting at the current one.
func (d *dialogue) window(n int) []string {
	end := min(d.line+n, len(d.lines))
	return d.lines[d.line:end]
}
