package world

// Object types that can be harvested with a tool.
const (
	ObjectTree  = "tree"
	ObjectDirt  = "dirt"
	ObjectRock  = "rock"
	ObjectTrash = "trash"
)

// ObjectTypes lists every known world object type.
var ObjectTypes = []string{ObjectTree, ObjectDirt, ObjectRock, ObjectTrash}

// IsObjectType reports whether t is a known world object type.
func IsObjectType(t string) bool {
	for _, ot := range ObjectTypes {
		if ot == t {
			return true
		}
	}
	return false
}

// Player is the character controlled by the connected user.
type Player struct {
	// Avatar selects the sprite set; it has no effect on game logic.
	Avatar string
	Pos    Position
	Facing Direction

	// Interacting is set while a dialogue box is open. Movement is
	// suspended until it is cleared.
	Interacting bool

	// Steps cycles 0..3 on every successful step for walk animations.
	Steps int
}

// NewPlayer places a player at pos looking in the given direction.
func NewPlayer(avatar string, pos Position, facing Direction) *Player {
	return &Player{
		Avatar: avatar,
		Pos:    pos,
		Facing: facing,
	}
}

// Target returns the tile directly in front of the player.
func (p *Player) Target() Position {
	dx, dy := p.Facing.Vector()
	return p.Pos.Add(dx, dy)
}

// NPC is a stationary non-player character. Name is the identity quests
// refer to.
type NPC struct {
	Name   string
	Type   string
	Facing Direction
	Pos    Position

	// InteractingWith is true while the player is in dialogue with this NPC.
	InteractingWith bool
}

// Object is a harvestable world object such as a tree or a rock.
type Object struct {
	Name      string
	Type      string
	Footprint Rect
}

// Gate moves the player to another map when they step through it in the
// configured direction.
type Gate struct {
	To        string
	Footprint Rect
	Exit      Direction
}
