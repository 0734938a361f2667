// Package sokoban implements the Sokoban level and board engine: parsing
// ASCII levels into typed grids, move/push legality, win detection and the
// notifications renderers listen to. It is UI-agnostic and deterministic
// apart from the injected clock.
package sokoban

// Cell is the code of one board square.
// The numeric values are stable: renderers and stored snapshots rely on them.
type Cell uint8

const (
	Outside Cell = iota
	Floor
	Wall
	Goal
	Crate
	Character
	CrateOnGoal
	CharacterOnGoal
)

// Occupants are encoded as offsets over the square they stand on:
// Floor+4 = Character, Goal+4 = CharacterOnGoal, Floor+3 = Crate, Goal+3 = CrateOnGoal.
const (
	characterDelta = Character - Floor
	crateDelta     = Crate - Floor
)

// Legend runes of the level text format.
const (
	RuneFloor           = ' '
	RuneWall            = '#'
	RuneGoal            = '.'
	RuneCrate           = '$'
	RuneCharacter       = '@'
	RuneCrateOnGoal     = '*'
	RuneCharacterOnGoal = '+'
)

// ParseCell maps a legend rune to its cell code.
// Anything outside the legend is Outside.
func ParseCell(r rune) Cell {
	switch r {
	case RuneFloor:
		return Floor
	case RuneWall:
		return Wall
	case RuneGoal:
		return Goal
	case RuneCrate:
		return Crate
	case RuneCharacter:
		return Character
	case RuneCrateOnGoal:
		return CrateOnGoal
	case RuneCharacterOnGoal:
		return CharacterOnGoal
	default:
		return Outside
	}
}

// Rune returns the legend rune of the cell. Outside renders as a space.
func (c Cell) Rune() rune {
	switch c {
	case Floor, Outside:
		return RuneFloor
	case Wall:
		return RuneWall
	case Goal:
		return RuneGoal
	case Crate:
		return RuneCrate
	case Character:
		return RuneCharacter
	case CrateOnGoal:
		return RuneCrateOnGoal
	case CharacterOnGoal:
		return RuneCharacterOnGoal
	default:
		return RuneFloor
	}
}

// String returns the cell name.
func (c Cell) String() string {
	switch c {
	case Outside:
		return "outside"
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Goal:
		return "goal"
	case Crate:
		return "crate"
	case Character:
		return "character"
	case CrateOnGoal:
		return "crate_on_goal"
	case CharacterOnGoal:
		return "character_on_goal"
	default:
		return "unknown"
	}
}

// IsWalkable reports whether a character or crate may enter the cell.
func (c Cell) IsWalkable() bool {
	return c == Floor || c == Goal
}

// IsCrate reports whether the cell holds a crate.
func (c Cell) IsCrate() bool {
	return c == Crate || c == CrateOnGoal
}

// IsGoal reports whether the cell is a goal square, occupied or not.
func (c Cell) IsGoal() bool {
	return c == Goal || c == CrateOnGoal || c == CharacterOnGoal
}

// HasCharacter reports whether the character stands on the cell.
func (c Cell) HasCharacter() bool {
	return c == Character || c == CharacterOnGoal
}

// exterior reports whether a column trim may pass over the cell.
func (c Cell) exterior() bool {
	return c == Outside || c == Floor
}

func withCharacter(c Cell) Cell    { return c + characterDelta }
func withoutCharacter(c Cell) Cell { return c - characterDelta }
func withCrate(c Cell) Cell        { return c + crateDelta }
func withoutCrate(c Cell) Cell     { return c - crateDelta }
