package saves

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pixil98/go-tilequest/internal/game"
)

// Slots is how many save slots a server offers.
const Slots = 6

// Store persists games in numbered slots, 1 through Slots.
type Store interface {
	Save(ctx context.Context, slot int, snap *game.Snapshot) error
	// Load returns ErrEmptySlot when nothing was saved in slot.
	Load(ctx context.Context, slot int) (*game.Snapshot, error)
	// List returns the occupied slots.
	List(ctx context.Context) (map[int]*game.Snapshot, error)
}

func checkSlot(slot int) error {
	if slot < 1 || slot > Slots {
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}
	return nil
}

func slotID(slot int) string {
	return "slot" + strconv.Itoa(slot)
}

// Entry labels one slot in the slot picker.
type Entry struct {
	Slot int
	Snap *game.Snapshot
}

func (e Entry) Selector() string {
	if e.Snap == nil {
		return fmt.Sprintf("Slot %d: empty", e.Slot)
	}
	return fmt.Sprintf("Slot %d: %s", e.Slot, e.Snap.Selector())
}

// Entries lists every slot, occupied or not, keyed for storage.NewSelector.
func Entries(ctx context.Context, st Store) (map[string]Entry, error) {
	used, err := st.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Entry, Slots)
	for slot := 1; slot <= Slots; slot++ {
		entries[slotID(slot)] = Entry{Slot: slot, Snap: used[slot]}
	}
	return entries, nil
}

// ParseSlot turns a slot id from Entries back into its number.
func ParseSlot(id string) (int, error) {
	var slot int
	if _, err := fmt.Sscanf(id, "slot%d", &slot); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadSlot, id)
	}
	return slot, checkSlot(slot)
}
