package player

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/terminal"
)

// panel is a full-screen connection that keeps the map in view. Frames are
// drawn on it and only the text under the map goes to the log.
type panel interface {
	DrawPanel(rows [][]terminal.Cell)
	BindKeys(keys map[tcell.Key]string)
}

var panelKeys = map[tcell.Key]string{
	tcell.KeyUp:    "north",
	tcell.KeyDown:  "south",
	tcell.KeyLeft:  "west",
	tcell.KeyRight: "east",
	tcell.KeyTab:   "use",
	tcell.KeyPgUp:  "prev",
	tcell.KeyPgDn:  "next",
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

var glyphStyles = map[byte]tcell.Style{
	glyphFloor:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	glyphObstacle: tcell.StyleDefault.Foreground(tcell.ColorSilver),
	glyphGate:     tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	'T':           tcell.StyleDefault.Foreground(tcell.ColorGreen),
	'D':           tcell.StyleDefault.Foreground(tcell.ColorOrange),
	'R':           tcell.StyleDefault.Foreground(tcell.ColorWhite),
	'x':           tcell.StyleDefault.Foreground(tcell.ColorRed),
	'N':           tcell.StyleDefault.Foreground(tcell.ColorWhite),
	'!':           tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	'?':           tcell.StyleDefault.Foreground(tcell.ColorLightYellow),
	'*':           tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true),
}

// avatarColors tell players apart on the map; the avatar is otherwise
// only a sprite choice.
var avatarColors = map[string]tcell.Color{
	"player0": tcell.ColorFuchsia,
	"player1": tcell.ColorAqua,
	"player2": tcell.ColorLime,
	"player3": tcell.ColorOrange,
	"player4": tcell.ColorYellow,
	"player5": tcell.ColorRed,
	"player6": tcell.ColorWhite,
	"player7": tcell.ColorSilver,
}

// frameCells draws a frame's status line and map as styled cells.
func frameCells(f game.Frame) [][]terminal.Cell {
	grid := frameGrid(f)

	rows := make([][]terminal.Cell, 0, len(grid)+1)
	status := []terminal.Cell{}
	for _, r := range statusLine(f) {
		status = append(status, terminal.Cell{Rune: r, Style: statusStyle})
	}
	rows = append(rows, status)

	for _, line := range grid {
		cells := make([]terminal.Cell, len(line))
		for x, c := range line {
			style, ok := glyphStyles[c]
			if !ok {
				style = tcell.StyleDefault
			}
			cells[x] = terminal.Cell{Rune: rune(c), Style: style}
		}
		rows = append(rows, cells)
	}

	p := f.Player.Pos
	if p.Y >= 0 && p.Y < len(grid) && p.X >= 0 && p.X < len(grid[p.Y]) {
		color, ok := avatarColors[f.Player.Avatar]
		if !ok {
			color = tcell.ColorFuchsia
		}
		rows[p.Y+1][p.X].Style = tcell.StyleDefault.Foreground(color).Bold(true)
	}

	return rows
}
