package story

import (
	"fmt"
	"strings"
)

type EffectKind string

const (
	EffectUnlockTool    EffectKind = "unlock_tool"
	EffectGrantJournal  EffectKind = "grant_journal"
	EffectGrantBooklet  EffectKind = "grant_booklet"
	EffectSetMapVersion EffectKind = "set_map_version"
)

func (k *EffectKind) UnmarshalText(text []byte) error {
	switch v := EffectKind(strings.ToLower(string(text))); v {
	case EffectUnlockTool, EffectGrantJournal, EffectGrantBooklet, EffectSetMapVersion:
		*k = v
		return nil
	}
	return fmt.Errorf("unknown effect kind %q", string(text))
}

// Effect is a single side effect of a quest reaching a state.
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Tool    string     `json:"tool,omitempty"`
	Map     string     `json:"map,omitempty"`
	Version string     `json:"version,omitempty"`
}

// EffectRule fires its effects whenever Quest is checked while in State.
type EffectRule struct {
	Quest   string   `json:"quest"`
	State   State    `json:"state"`
	Effects []Effect `json:"effects"`
}

type EffectTable []EffectRule

// For returns the effects for a quest reaching state, in authored order.
func (t EffectTable) For(quest string, state State) []Effect {
	var out []Effect
	for _, r := range t {
		if r.Quest == quest && r.State == state {
			out = append(out, r.Effects...)
		}
	}
	return out
}

// MapVersions returns every map version effect authored for quest, whatever
// state triggers it.
func (t EffectTable) MapVersions(quest string) []Effect {
	var out []Effect
	for _, r := range t {
		if r.Quest != quest {
			continue
		}
		for _, e := range r.Effects {
			if e.Kind == EffectSetMapVersion {
				out = append(out, e)
			}
		}
	}
	return out
}
