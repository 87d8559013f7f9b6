package saves

import "errors"

var (
	ErrEmptySlot = errors.New("save slot is empty")
	ErrBadSlot   = errors.New("no such save slot")
)
