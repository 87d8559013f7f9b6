package storage

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"
)

type prefs struct {
	Width int `json:"width"`
}

func TestExtensionState_SetGet(t *testing.T) {
	tests := map[string]struct {
		initial  ExtensionState
		key      string
		value    any
		expFound bool
		expErr   string
	}{
		"nil map is created": {
			initial:  nil,
			key:      "prefs",
			value:    prefs{Width: 60},
			expFound: true,
		},
		"overwrites existing": {
			initial:  ExtensionState{"prefs": json.RawMessage(`{"width":10}`)},
			key:      "prefs",
			value:    prefs{Width: 60},
			expFound: true,
		},
		"unmarshalable value": {
			initial: ExtensionState{},
			key:     "bad",
			value:   make(chan int),
			expErr:  "marshal extension",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := tt.initial
			err := e.Set(tt.key, tt.value)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got prefs
			found, err := e.Get(tt.key, &got)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "found", found, tt.expFound)
			testutil.AssertEqual(t, "value", got, tt.value.(prefs))
		})
	}
}

func TestExtensionState_Get(t *testing.T) {
	tests := map[string]struct {
		state    ExtensionState
		key      string
		expFound bool
		expErr   string
	}{
		"nil map":     {state: nil, key: "prefs"},
		"missing key": {state: ExtensionState{"other": json.RawMessage(`1`)}, key: "prefs"},
		"empty raw":   {state: ExtensionState{"prefs": nil}, key: "prefs"},
		"bad json": {
			state:    ExtensionState{"prefs": json.RawMessage(`{"width":`)},
			key:      "prefs",
			expFound: true,
			expErr:   "unmarshal extension",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out prefs
			found, err := tt.state.Get(tt.key, &out)
			testutil.AssertEqual(t, "found", found, tt.expFound)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			}
		})
	}
}

func TestExtensionState_DeleteAndClone(t *testing.T) {
	var nilState ExtensionState
	nilState.Delete("anything")
	testutil.AssertEqual(t, "nil clone", nilState.Clone() == nil, true)

	e := ExtensionState{"a": json.RawMessage(`1`), "b": json.RawMessage(`2`)}
	c := e.Clone()
	e.Delete("a")

	testutil.AssertEqual(t, "original", len(e), 1)
	testutil.AssertEqual(t, "clone", len(c), 2)
}
