package saves

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/storage"
)

// FileStore keeps each slot as a JSON asset in a directory.
type FileStore struct {
	store storage.Storer[*game.Snapshot]
}

func NewFileStore(path string) (*FileStore, error) {
	st, err := storage.NewFileStore[*game.Snapshot](path)
	if err != nil {
		return nil, fmt.Errorf("opening save directory: %w", err)
	}
	return &FileStore{store: st}, nil
}

func (s *FileStore) Save(ctx context.Context, slot int, snap *game.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := s.store.Save(slotID(slot), snap); err != nil {
		return fmt.Errorf("saving slot %d: %w", slot, err)
	}
	slog.InfoContext(ctx, "game saved", "slot", slot, "session", snap.ID)
	return nil
}

func (s *FileStore) Load(_ context.Context, slot int) (*game.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	snap := s.store.Get(slotID(slot))
	if snap == nil {
		return nil, ErrEmptySlot
	}
	return snap, nil
}

func (s *FileStore) List(_ context.Context) (map[int]*game.Snapshot, error) {
	used := map[int]*game.Snapshot{}
	for id, snap := range s.store.GetAll() {
		slot, err := ParseSlot(id)
		if err != nil {
			continue
		}
		used[slot] = snap
	}
	return used, nil
}
