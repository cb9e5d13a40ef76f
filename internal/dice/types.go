// internal/dice/types.go
//
// Core type definitions for the bonus dice engine.
// Defines:
//   - State: everything a session needs to remember about the current game.
//   - Group: a display bucket of equal-valued dice.

package dice

const (
	// Sides is the number of faces on every die.
	Sides = 6
	// Wild is the wildcard face; it matches any base value.
	Wild = 6
	// NoBase marks a base value that has not been resolved yet (all dice wild so far).
	NoBase = 0
)

// State holds one game. It is owned by the caller and passed in and out of
// the engine on every operation.
type State struct {
	Rolls    []int `json:"rolls"`          // Every die rolled this game, initial roll first.
	NumDice  int   `json:"numDice"`        // Size of the initial roll.
	Base     int   `json:"base,omitempty"` // Value being matched, or NoBase.
	CanBonus bool  `json:"canBonus"`       // True while another bonus die may be rolled.
}

// Resolved reports whether a non-wild base value is known.
func (s State) Resolved() bool { return s.Base != NoBase }

// Started reports whether an initial roll has been made.
func (s State) Started() bool { return len(s.Rolls) > 0 }

// Clone returns a deep copy so the Rolls slice is not shared.
func (s State) Clone() State {
	c := s
	if s.Rolls != nil {
		c.Rolls = append([]int(nil), s.Rolls...)
	}
	return c
}

// Group is a run of equal dice for presentation.
type Group struct {
	Value int   `json:"value"`
	Dice  []int `json:"dice"`
}

// Size is the number of dice in the group.
func (g Group) Size() int { return len(g.Dice) }
