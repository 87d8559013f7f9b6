package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Placement is a pixel rectangle as exported by the map editor. A zero width
// or height means a single tile.
type Placement struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (p Placement) tiles(tileSize int) Rect {
	r := Rect{X: p.X / tileSize, Y: p.Y / tileSize, W: 1, H: 1}
	if p.Width > tileSize {
		r.W = p.Width / tileSize
	}
	if p.Height > tileSize {
		r.H = p.Height / tileSize
	}
	return r
}

type NPCPlacement struct {
	Placement
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Facing Direction `json:"facing"`
}

type ObjectPlacement struct {
	Placement
	Name string `json:"name"`
	Type string `json:"type"`
}

type GatePlacement struct {
	Placement
	To string `json:"to"`
	DX int    `json:"dx"`
	DY int    `json:"dy"`
}

// AreaSpec is the authored description of a map.
type AreaSpec struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	TileSize  int               `json:"tile_size"`
	NPCs      []NPCPlacement    `json:"npcs"`
	Objects   []ObjectPlacement `json:"objects"`
	Obstacles []Placement       `json:"obstacles"`
	Gates     []GatePlacement   `json:"gates"`
}

func (s *AreaSpec) Validate() error {
	el := errors.NewErrorList()

	if s.TileSize <= 0 {
		el.Add(fmt.Errorf("tile_size must be positive"))
	}
	if s.Width <= 0 || s.Height <= 0 {
		el.Add(fmt.Errorf("width and height must be positive"))
	}
	if s.TileSize > 0 && (s.Width%s.TileSize != 0 || s.Height%s.TileSize != 0) {
		el.Add(fmt.Errorf("width and height must be multiples of tile_size"))
	}

	names := map[string]bool{}
	for i, n := range s.NPCs {
		if n.Name == "" {
			el.Add(fmt.Errorf("npc %d: name must be set", i))
			continue
		}
		if names[n.Name] {
			el.Add(fmt.Errorf("npc %s: duplicate name", n.Name))
		}
		names[n.Name] = true
	}

	for i, o := range s.Objects {
		if o.Name == "" {
			el.Add(fmt.Errorf("object %d: name must be set", i))
			continue
		}
		if names[o.Name] {
			el.Add(fmt.Errorf("object %s: duplicate name", o.Name))
		}
		names[o.Name] = true
		if !IsObjectType(o.Type) {
			el.Add(fmt.Errorf("object %s: unknown type %q", o.Name, o.Type))
		}
	}

	for i, g := range s.Gates {
		if g.To == "" {
			el.Add(fmt.Errorf("gate %d: destination must be set", i))
		}
		if _, ok := DirectionOf(g.DX, g.DY); !ok {
			el.Add(fmt.Errorf("gate %d: exit vector (%d,%d) is not a unit step", i, g.DX, g.DY))
		}
	}

	return el.Err()
}

// NPCNames lists the names of every NPC placed on the map.
func (s *AreaSpec) NPCNames() []string {
	names := make([]string, 0, len(s.NPCs))
	for _, n := range s.NPCs {
		names = append(names, n.Name)
	}
	return names
}

// Area is a live map instance. Unlike AreaSpec it is mutated as the player
// harvests objects.
type Area struct {
	Name    string
	Version string

	// Width and Height are in tiles.
	Width  int
	Height int

	NPCs      []*NPC
	Objects   []*Object
	Obstacles []Rect
	Gates     []*Gate
}

// NewArea instantiates spec, skipping any object whose name is in removed.
func NewArea(name, version string, spec *AreaSpec, removed RemovedSet) *Area {
	ts := spec.TileSize
	a := &Area{
		Name:    name,
		Version: version,
		Width:   spec.Width / ts,
		Height:  spec.Height / ts,
	}

	for _, n := range spec.NPCs {
		a.NPCs = append(a.NPCs, &NPC{
			Name:   n.Name,
			Type:   n.Type,
			Facing: n.Facing,
			Pos:    n.tiles(ts).Origin(),
		})
	}

	for _, o := range spec.Objects {
		if removed.Contains(o.Name) {
			continue
		}
		a.Objects = append(a.Objects, &Object{
			Name:      o.Name,
			Type:      o.Type,
			Footprint: o.tiles(ts),
		})
	}

	for _, o := range spec.Obstacles {
		a.Obstacles = append(a.Obstacles, o.tiles(ts))
	}

	for _, g := range spec.Gates {
		exit, _ := DirectionOf(g.DX, g.DY)
		a.Gates = append(a.Gates, &Gate{
			To:        g.To,
			Footprint: g.tiles(ts),
			Exit:      exit,
		})
	}

	return a
}

// InBounds reports whether p is on the map.
func (a *Area) InBounds(p Position) bool {
	return p.X >= 0 && p.X < a.Width && p.Y >= 0 && p.Y < a.Height
}

// Blocked reports whether a player may not stand on p.
func (a *Area) Blocked(p Position) bool {
	if !a.InBounds(p) {
		return true
	}
	for _, r := range a.Obstacles {
		if r.Contains(p) {
			return true
		}
	}
	for _, n := range a.NPCs {
		if n.Pos == p {
			return true
		}
	}
	for _, o := range a.Objects {
		if o.Footprint.Contains(p) {
			return true
		}
	}
	return false
}

// NPC returns the named NPC or nil.
func (a *Area) NPC(name string) *NPC {
	for _, n := range a.NPCs {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// FacedNPC returns the NPC on the tile the player is looking at, if any.
func (a *Area) FacedNPC(p *Player) *NPC {
	target := p.Target()
	for _, n := range a.NPCs {
		if n.Pos == target {
			return n
		}
	}
	return nil
}

// FacedObject returns the object whose footprint covers the tile the player
// is looking at, if any.
func (a *Area) FacedObject(p *Player) *Object {
	target := p.Target()
	for _, o := range a.Objects {
		if o.Footprint.Contains(target) {
			return o
		}
	}
	return nil
}

// RemoveObject deletes the named object from the area. Returns false if no
// such object exists.
func (a *Area) RemoveObject(name string) bool {
	for i, o := range a.Objects {
		if o.Name == name {
			a.Objects = append(a.Objects[:i], a.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// Place moves the player onto the gate that leads back to from. Returns false
// if the area has no such gate, leaving the player untouched.
func (a *Area) Place(p *Player, from string) bool {
	for _, g := range a.Gates {
		if g.To == from {
			p.Pos = g.Footprint.Origin()
			return true
		}
	}
	return false
}
