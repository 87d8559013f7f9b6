package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/saves"
	"github.com/pixil98/go-tilequest/internal/story"
)

// Player drives one session from a connection: it reads command lines,
// runs them and redraws the frame.
type Player struct {
	conn       *lineConn
	session    *game.Session
	slot       int
	book       *story.Book
	saves      saves.Store
	cmdHandler *commands.Handler
}

func (p *Player) Play(ctx context.Context) error {
	// Read input lines into a channel so ctx can interrupt the loop.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inputChan)
		for {
			line, err := p.conn.ReadString('\n')
			if line != "" {
				select {
				case inputChan <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					inputErrChan <- err
				}
				return
			}
		}
	}()

	if err := p.redraw(); err != nil {
		return err
	}
	if err := p.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost. Nothing is saved without the player asking.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			quit, err := p.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if quit {
				return p.writeLine("Goodbye!")
			}

			if err := p.prompt(); err != nil {
				return err
			}
		}
	}
}

func (p *Player) handle(ctx context.Context, line string) (bool, error) {
	if line == "" {
		return false, nil
	}

	outcome, err := p.cmdHandler.Exec(ctx, p.session, p.conn, line)
	if err != nil {
		var userErr *commands.UserError
		if !errors.As(err, &userErr) {
			return false, fmt.Errorf("command execution failed: %w", err)
		}
		if err := p.writeLine(userErr.Message); err != nil {
			return false, err
		}
	}

	if outcome.Redraw {
		if err := p.redraw(); err != nil {
			return false, err
		}
	}

	for _, ev := range p.session.Medals() {
		if err := p.writeLine(medalLine(p.book, ev)); err != nil {
			return false, err
		}
	}

	if outcome.Save {
		if err := p.save(ctx); err != nil {
			return false, err
		}
	}

	return outcome.Quit, nil
}

func (p *Player) save(ctx context.Context) error {
	err := p.saves.Save(ctx, p.slot, p.session.Snapshot())
	if err != nil {
		slog.ErrorContext(ctx, "saving game", "session", p.session.ID(), "slot", p.slot, "error", err)
		return p.writeLine("Your game could not be saved.")
	}
	return p.writeLine(fmt.Sprintf("Game saved in slot %d.", p.slot))
}

func (p *Player) redraw() error {
	f := p.session.View()
	if p.conn.panel != nil {
		p.conn.panel.DrawPanel(frameCells(f))
		_, err := io.WriteString(p.conn, frameText(f))
		return err
	}

	_, err := io.WriteString(p.conn, RenderFrame(f))
	return err
}

func (p *Player) prompt() error {
	_, err := io.WriteString(p.conn, "> ")
	return err
}

func (p *Player) writeLine(msg string) error {
	_, err := io.WriteString(p.conn, msg+"\n")
	return err
}
