package world

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestArea_Step(t *testing.T) {
	tests := map[string]struct {
		pos         Position
		facing      Direction
		interacting bool
		dx, dy      int

		expResult StepResult
		expPos    Position
		expFacing Direction
		expGate   string
		expErr    error
	}{
		"open tile": {
			pos: Position{X: 4, Y: 4}, facing: DirDown,
			dx: 1, dy: 0,
			expResult: StepMoved, expPos: Position{X: 5, Y: 4}, expFacing: DirRight,
		},
		"into obstacle turns but stays": {
			pos: Position{X: 4, Y: 1}, facing: DirDown,
			dx: 0, dy: -1,
			expResult: StepBlocked, expPos: Position{X: 4, Y: 1}, expFacing: DirUp,
		},
		"into npc": {
			pos: Position{X: 3, Y: 3}, facing: DirDown,
			dx: 0, dy: -1,
			expResult: StepBlocked, expPos: Position{X: 3, Y: 3}, expFacing: DirUp,
		},
		"into any tile of object footprint": {
			pos: Position{X: 6, Y: 4}, facing: DirDown,
			dx: 0, dy: -1,
			expResult: StepBlocked, expPos: Position{X: 6, Y: 4}, expFacing: DirUp,
		},
		"off the map": {
			pos: Position{X: 0, Y: 4}, facing: DirDown,
			dx: -1, dy: 0,
			expResult: StepBlocked, expPos: Position{X: 0, Y: 4}, expFacing: DirLeft,
		},
		"through gate in exit direction": {
			pos: Position{X: 9, Y: 4}, facing: DirRight,
			dx: 1, dy: 0,
			expResult: StepGate, expPos: Position{X: 9, Y: 4}, expFacing: DirRight, expGate: "map1",
		},
		"on gate in other direction": {
			pos: Position{X: 9, Y: 4}, facing: DirRight,
			dx: 0, dy: 1,
			expResult: StepMoved, expPos: Position{X: 9, Y: 5}, expFacing: DirDown,
		},
		"interacting ignores input": {
			pos: Position{X: 4, Y: 4}, facing: DirUp, interacting: true,
			dx: 1, dy: 0,
			expResult: StepIgnored, expPos: Position{X: 4, Y: 4}, expFacing: DirUp,
		},
		"diagonal rejected": {
			pos: Position{X: 4, Y: 4}, facing: DirUp,
			dx: 1, dy: 1,
			expResult: StepBlocked, expPos: Position{X: 4, Y: 4}, expFacing: DirUp,
			expErr: ErrInvalidStep,
		},
		"zero step rejected": {
			pos: Position{X: 4, Y: 4}, facing: DirUp,
			expResult: StepBlocked, expPos: Position{X: 4, Y: 4}, expFacing: DirUp,
			expErr: ErrInvalidStep,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := NewArea("map0", "", testSpec(), NewRemovedSet())
			p := NewPlayer("player0", tt.pos, tt.facing)
			p.Interacting = tt.interacting

			res, gate, err := a.Step(p, tt.dx, tt.dy)
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("expected error %v, got %v", tt.expErr, err)
			}

			gotGate := ""
			if gate != nil {
				gotGate = gate.To
			}

			testutil.AssertEqual(t, "result", res, tt.expResult)
			testutil.AssertEqual(t, "pos", p.Pos, tt.expPos)
			testutil.AssertEqual(t, "facing", p.Facing, tt.expFacing)
			testutil.AssertEqual(t, "gate", gotGate, tt.expGate)
		})
	}
}

func TestArea_StepCyclesSteps(t *testing.T) {
	a := NewArea("map0", "", testSpec(), NewRemovedSet())
	p := NewPlayer("player0", Position{X: 1, Y: 2}, DirDown)

	for range 5 {
		if _, _, err := a.Step(p, 0, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := a.Step(p, 0, -1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	testutil.AssertEqual(t, "steps", p.Steps, 10%4)
}
