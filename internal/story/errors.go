package story

import "errors"

var (
	// ErrNoDialogue means nothing is authored for the NPC or object type.
	ErrNoDialogue   = errors.New("no dialogue")
	ErrUnknownQuest = errors.New("unknown quest")
)
