package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/go-tilequest/internal"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/saves"
	"github.com/pixil98/go-tilequest/internal/storage"
)

const banner = `
  _   _ _                             _
 | |_(_) | ___  __ _ _   _  ___  ___| |_
 | __| | |/ _ \/ _' | | | |/ _ \/ __| __|
 | |_| | |  __/ (_| | |_| |  __/\__ \ |_
  \__|_|_|\___|\__, |\__,_|\___||___/\__|
                  |_|
`

// slotFlow asks the player which save slot to play in. An empty slot, or an
// occupied one the player chooses to overwrite, starts a new game.
type slotFlow struct {
	saves saves.Store
}

type slotChoice struct {
	slot int
	// snap is nil for a new game.
	snap *game.Snapshot
	// avatar is the sprite set picked for a new game.
	avatar string
}

type avatarEntry string

func (a avatarEntry) Selector() string {
	return string(a)
}

func (f *slotFlow) Run(ctx context.Context, rw io.ReadWriter) (*slotChoice, error) {
	if _, err := io.WriteString(rw, banner+"\nWelcome to TileQuest!\n\n"); err != nil {
		return nil, err
	}

	for {
		entries, err := saves.Entries(ctx, f.saves)
		if err != nil {
			return nil, fmt.Errorf("listing saves: %w", err)
		}

		id, err := storage.NewSelector(entries).Prompt(rw, "Choose a save slot:")
		if err != nil {
			return nil, err
		}
		slot, err := saves.ParseSlot(id)
		if err != nil {
			return nil, err
		}

		snap, err := f.saves.Load(ctx, slot)
		if errors.Is(err, saves.ErrEmptySlot) {
			return f.newGame(rw, slot)
		}
		if errors.Is(err, game.ErrCorruptSnapshot) {
			slog.WarnContext(ctx, "replacing unreadable save", "slot", slot, "error", err)
			if _, err := fmt.Fprintf(rw, "The game in slot %d cannot be read. Starting a new one.\n", slot); err != nil {
				return nil, err
			}
			return f.newGame(rw, slot)
		}
		if err != nil {
			return nil, fmt.Errorf("loading slot %d: %w", slot, err)
		}

		resume, err := internal.PromptYN(rw, fmt.Sprintf("Continue the game in slot %d (Y/N)? ", slot))
		if err != nil {
			return nil, err
		}
		if resume {
			return &slotChoice{slot: slot, snap: snap}, nil
		}

		overwrite, err := internal.PromptYN(rw, "Start a new game over it (Y/N)? ")
		if err != nil {
			return nil, err
		}
		if overwrite {
			return f.newGame(rw, slot)
		}
	}
}

func (f *slotFlow) newGame(rw io.ReadWriter, slot int) (*slotChoice, error) {
	options := make(map[string]avatarEntry, len(game.Avatars))
	for _, a := range game.Avatars {
		options[a] = avatarEntry(a)
	}

	avatar, err := storage.NewSelector(options).Prompt(rw, "Choose your avatar:")
	if err != nil {
		return nil, err
	}
	return &slotChoice{slot: slot, avatar: avatar}, nil
}
