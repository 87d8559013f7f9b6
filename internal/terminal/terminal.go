package terminal

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	defaultTerm   = "xterm-256color"
	maxScrollback = 500
	// minLogWidth is the narrowest log that still goes beside the panel
	// rather than under it.
	minLogWidth = 30
	lineBuffer  = 16
)

var (
	textStyle   = tcell.StyleDefault
	inputStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Cell is one character of the panel.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Terminal runs a line based conversation on a full tcell screen. The
// screen holds a panel the caller redraws in place, a scrolling log of
// everything written and an edit line. Finished lines are returned by Read.
type Terminal struct {
	screen tcell.Screen

	mu      sync.Mutex
	keys    map[tcell.Key]string
	panel   [][]Cell
	log     []string
	partial string
	input   []rune

	lines   chan string
	pending []byte

	done     chan struct{}
	ending   sync.Once
	finiOnce sync.Once
}

// termMu guards TERM while tcell picks a terminfo entry from it.
var termMu sync.Mutex

// Open starts a terminal on tty for a client that reported term as its
// terminal type.
func Open(tty tcell.Tty, term string) (*Terminal, error) {
	if term == "" {
		term = defaultTerm
	}

	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("creating screen for %q: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	return New(screen), nil
}

// New runs a terminal on an initialised screen.
func New(screen tcell.Screen) *Terminal {
	t := &Terminal{
		screen: screen,
		keys:   map[tcell.Key]string{},
		lines:  make(chan string, lineBuffer),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

// BindKeys makes each key, pressed on an empty edit line, send its line as
// if it had been typed.
func (t *Terminal) BindKeys(keys map[tcell.Key]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.keys = maps.Clone(keys)
}

// DrawPanel replaces the panel.
func (t *Terminal) DrawPanel(rows [][]Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.panel = rows
	t.draw()
}

func (t *Terminal) Read(p []byte) (int, error) {
	if len(t.pending) == 0 {
		select {
		case line := <-t.lines:
			t.pending = []byte(line + "\n")
		case <-t.done:
			return 0, io.EOF
		}
	}

	n := copy(p, t.pending)
	t.pending = t.pending[n:]
	return n, nil
}

// Write adds text to the log. Text after the last newline stays in front of
// the edit line, which is how prompts are shown.
func (t *Terminal) Write(p []byte) (int, error) {
	select {
	case <-t.done:
		return 0, io.ErrClosedPipe
	default:
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	text := strings.ReplaceAll(t.partial+string(p), "\r", "")
	parts := strings.Split(text, "\n")
	t.addLog(parts[:len(parts)-1]...)
	t.partial = parts[len(parts)-1]
	t.draw()

	return len(p), nil
}

// Close ends the session and hands the terminal back to the client.
func (t *Terminal) Close() error {
	t.end()
	t.finiOnce.Do(t.screen.Fini)
	return nil
}

func (t *Terminal) end() {
	t.ending.Do(func() { close(t.done) })
}

func (t *Terminal) run() {
	defer t.end()

	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventError:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.mu.Lock()
			t.draw()
			t.mu.Unlock()
		case *tcell.EventKey:
			if !t.key(ev.Key(), ev.Rune()) {
				return
			}
		}
	}
}

// key applies one key press and reports whether the session goes on.
func (t *Terminal) key(k tcell.Key, r rune) bool {
	t.mu.Lock()

	var line string
	submit := false
	switch k {
	case tcell.KeyCtrlC, tcell.KeyCtrlD:
		t.mu.Unlock()
		return false
	case tcell.KeyEnter:
		line, submit = string(t.input), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(t.input); n > 0 {
			t.input = t.input[:n-1]
		}
	case tcell.KeyRune:
		t.input = append(t.input, r)
	default:
		if cmd, ok := t.keys[k]; ok && len(t.input) == 0 {
			line, submit = cmd, true
		}
	}

	if submit {
		t.addLog(t.partial + line)
		t.partial = ""
		t.input = nil
	}
	t.draw()
	t.mu.Unlock()

	if submit {
		select {
		case t.lines <- line:
		case <-t.done:
			return false
		}
	}
	return true
}

func (t *Terminal) addLog(lines ...string) {
	t.log = append(t.log, lines...)
	if over := len(t.log) - maxScrollback; over > 0 {
		t.log = t.log[over:]
	}
}

// draw repaints the whole screen. The panel goes on the left with the log
// beside it when both fit, and above the log otherwise. Callers hold mu.
func (t *Terminal) draw() {
	w, h := t.screen.Size()
	t.screen.Clear()
	if w <= 0 || h <= 0 {
		return
	}

	pw, ph := panelSize(t.panel)
	logX, logY := 0, 0
	switch {
	case pw == 0:
	case w-pw-2 >= minLogWidth:
		t.drawPanel(w, h-1)
		for y := range h - 1 {
			t.screen.SetContent(pw, y, '│', nil, borderStyle)
		}
		logX = pw + 2
	default:
		rows := min(ph, max(h-3, 0))
		t.drawPanel(w, rows)
		for x := range w {
			t.screen.SetContent(x, rows, '─', nil, borderStyle)
		}
		logY = rows + 1
	}

	rows := wrapRows(t.log, w-logX)
	logH := max(h-1-logY, 0)
	if len(rows) > logH {
		rows = rows[len(rows)-logH:]
	}
	for i, row := range rows {
		put(t.screen, logX, logY+i, w, row, textStyle)
	}

	line := t.partial + string(t.input)
	for runewidth.StringWidth(line) >= w && line != "" {
		_, size := utf8.DecodeRuneInString(line)
		line = line[size:]
	}
	x := put(t.screen, 0, h-1, w, line, inputStyle)
	t.screen.ShowCursor(x, h-1)

	t.screen.Show()
}

func (t *Terminal) drawPanel(w, h int) {
	for y, row := range t.panel {
		if y >= h {
			return
		}
		x := 0
		for _, c := range row {
			if x >= w {
				break
			}
			t.screen.SetContent(x, y, c.Rune, nil, c.Style)
			x += max(runewidth.RuneWidth(c.Rune), 1)
		}
	}
}

func panelSize(rows [][]Cell) (int, int) {
	w := 0
	for _, row := range rows {
		rw := 0
		for _, c := range row {
			rw += max(runewidth.RuneWidth(c.Rune), 1)
		}
		w = max(w, rw)
	}
	return w, len(rows)
}

// put writes s from x up to maxX and returns the column after it.
func put(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := max(runewidth.RuneWidth(r), 1)
		if x+rw > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

// wrapRows breaks each line into screen rows no wider than width.
func wrapRows(lines []string, width int) []string {
	if width <= 0 {
		return nil
	}

	var rows []string
	for _, l := range lines {
		if l == "" {
			rows = append(rows, "")
			continue
		}
		var sb strings.Builder
		cur := 0
		for _, r := range l {
			rw := max(runewidth.RuneWidth(r), 1)
			if cur+rw > width {
				rows = append(rows, sb.String())
				sb.Reset()
				cur = 0
			}
			sb.WriteRune(r)
			cur += rw
		}
		rows = append(rows, sb.String())
	}
	return rows
}
