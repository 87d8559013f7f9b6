package storage

import (
	"encoding/json"
	"fmt"
	"maps"
)

// ExtensionState carries values that ride along with a saved record without
// the record's type knowing about them. Front ends use it for per-save
// preferences.
type ExtensionState map[string]json.RawMessage

func (e *ExtensionState) Set(key string, v any) error {
	if *e == nil {
		*e = ExtensionState{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the value at key into out. A missing key reports false with
// no error.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Clone copies the map so a snapshot does not share it with live state.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}
