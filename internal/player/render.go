package player

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pixil98/go-tilequest/internal/display"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

const (
	glyphFloor    = '.'
	glyphObstacle = '#'
	glyphGate     = '+'
)

var objectGlyphs = map[string]byte{
	world.ObjectTree:  'T',
	world.ObjectDirt:  'D',
	world.ObjectRock:  'R',
	world.ObjectTrash: 'x',
}

var npcGlyphs = map[story.MarkerKind]byte{
	story.MarkerNone:    'N',
	story.MarkerOffered: '!',
	story.MarkerPending: '?',
	story.MarkerReady:   '*',
}

var playerGlyphs = map[world.Direction]byte{
	world.DirUp:    '^',
	world.DirDown:  'v',
	world.DirLeft:  '<',
	world.DirRight: '>',
}

const interactHint = "Someone or something is in front of you. Type 'use' to interact.\n"

// RenderFrame draws a frame as a character grid with a status line above
// and the dialogue box, if any, below.
func RenderFrame(f game.Frame) string {
	var sb strings.Builder

	sb.WriteString(statusLine(f))
	sb.WriteByte('\n')
	for _, row := range frameGrid(f) {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	sb.WriteString(frameText(f))

	return sb.String()
}

// frameGrid draws the map with one glyph per tile.
func frameGrid(f game.Frame) [][]byte {
	grid := make([][]byte, f.Height)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{glyphFloor}, f.Width)
	}
	set := func(p world.Position, c byte) {
		if p.Y >= 0 && p.Y < len(grid) && p.X >= 0 && p.X < len(grid[p.Y]) {
			grid[p.Y][p.X] = c
		}
	}
	fill := func(r world.Rect, c byte) {
		for y := r.Y; y < r.Y+max(r.H, 1); y++ {
			for x := r.X; x < r.X+max(r.W, 1); x++ {
				set(world.Position{X: x, Y: y}, c)
			}
		}
	}

	for _, r := range f.Gates {
		fill(r, glyphGate)
	}
	for _, r := range f.Obstacles {
		fill(r, glyphObstacle)
	}
	for _, o := range f.Objects {
		c, ok := objectGlyphs[o.Type]
		if !ok {
			c = glyphObstacle
		}
		fill(o.Footprint, c)
	}
	for _, n := range f.NPCs {
		set(n.Pos, npcGlyphs[n.Marker])
	}
	set(f.Player.Pos, playerGlyphs[f.Player.Facing])

	return grid
}

// frameText is what goes under the map: the open dialogue or a hint.
func frameText(f game.Frame) string {
	switch {
	case f.Dialogue != nil:
		return dialogueBox(f.Dialogue)
	case f.CanInteract:
		return interactHint
	}
	return ""
}

func statusLine(f game.Frame) string {
	parts := []string{fmt.Sprintf("[%s]", f.Map)}

	if f.Quest != "" {
		parts = append(parts, fmt.Sprintf("Quest: %s (%s)", f.Quest, f.QuestState))
	}

	tool := "none"
	if f.Tool != "" {
		tool = f.Tool
	}
	parts = append(parts, "Tool: "+tool)

	return strings.Join(parts, "  ")
}

func dialogueBox(d *game.DialogueView) string {
	title := display.Capitalize(d.Partner)

	width := len(title) + 4
	for _, l := range d.Lines {
		width = max(width, len(l))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, ".-- %s %s.\n", title, strings.Repeat("-", width-len(title)))
	for i, l := range d.Lines {
		arrow := " "
		switch {
		case i == 0 && d.Up:
			arrow = "^"
		case i == len(d.Lines)-1 && d.Down:
			arrow = "v"
		}
		fmt.Fprintf(&sb, "| %-*s %s |\n", width, l, arrow)
	}
	fmt.Fprintf(&sb, "'%s'\n", strings.Repeat("-", width+4))

	return sb.String()
}

func medalLine(book *story.Book, ev story.GoalCompleted) string {
	if ev.Final {
		return "*** You have completed every goal. Thank you for playing! ***"
	}

	title := fmt.Sprintf("goal %d", ev.Goal)
	if ev.Goal >= 0 && ev.Goal < len(book.Goals) && book.Goals[ev.Goal].Title != "" {
		title = book.Goals[ev.Goal].Title
	}
	return fmt.Sprintf("*** Medal earned: %s ***", display.Title(title))
}
