package game

import "errors"

var (
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrUnknownMap      = errors.New("unknown map")
	// ErrLocked is returned when opening a screen the player has not earned.
	ErrLocked         = errors.New("not unlocked yet")
	ErrCheatsDisabled = errors.New("cheats are disabled")
)
