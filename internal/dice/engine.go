// internal/dice/engine.go
//
// Rule engine for a single bonus dice game.
// Responsibilities:
//   - Roll an initial hand of N six-sided dice.
//   - Resolve the base value (most frequent non-six, larger value on ties).
//   - Decide whether bonus rolling may continue and extend the game one die at a time.
//
// Notes:
//   - Sixes are wild and match any base.
//   - The engine keeps no state between calls; State is owned by the caller.
//   - Input is assumed valid (numDice >= 1). Callers reject anything else.
package dice

// Engine rolls dice from an injected Source.
type Engine struct {
	src Source
}

// New constructs an Engine. A nil src falls back to CryptoSource.
func New(src Source) *Engine {
	if src == nil {
		src = CryptoSource{}
	}
	return &Engine{src: src}
}

// die draws a single face in [1, Sides].
func (e *Engine) die() int { return e.src.IntN(Sides) + 1 }

// Roll starts a fresh game with numDice dice, replacing any prior state.
// A non-positive count yields an empty, closed game.
func (e *Engine) Roll(numDice int) State {
	if numDice < 1 {
		return State{}
	}
	rolls := make([]int, numDice)
	for i := range rolls {
		rolls[i] = e.die()
	}
	s := State{Rolls: rolls, NumDice: numDice}
	s.Evaluate()
	return s
}

// Bonus rolls one more die if the game still allows it and reports whether a
// die was added. When CanBonus is false the state is left untouched.
func (e *Engine) Bonus(s *State) bool {
	if s == nil || !s.CanBonus {
		return false
	}
	d := e.die()
	s.Rolls = append(s.Rolls, d)
	s.advance(d)
	return true
}

// advance applies one bonus die to Base and CanBonus.
//
// Continuation rule:
//   - An unresolved base is fixed by the first non-six bonus die.
//   - The game continues while each new die equals the base or is a six.
//   - Once closed it stays closed until the next Roll.
func (s *State) advance(d int) {
	if !s.Resolved() && d != Wild {
		s.Base = d
	}
	s.CanBonus = d == Wild || d == s.Base
}

// Evaluate re-derives Base and CanBonus from Rolls: the first NumDice dice
// are the initial roll, anything after them is replayed as bonus dice.
//
// Initial roll rules:
//   - A single die is only live when it shows a six; the base is left open
//     so the first bonus die decides it. Any other face is final.
//   - With several dice, all sixes keeps the game live with no base.
//   - Otherwise the base is the most frequent non-six (larger value on ties)
//     and the game is live only if every non-six shows that value.
func (s *State) Evaluate() {
	n := s.NumDice
	if n <= 0 || n > len(s.Rolls) {
		n = len(s.Rolls)
	}
	s.evaluateInitial(s.Rolls[:n])
	for _, d := range s.Rolls[n:] {
		if !s.CanBonus {
			return
		}
		s.advance(d)
	}
}

func (s *State) evaluateInitial(initial []int) {
	if len(initial) == 0 {
		s.Base, s.CanBonus = NoBase, false
		return
	}

	if len(initial) == 1 {
		if initial[0] == Wild {
			s.Base, s.CanBonus = NoBase, true
		} else {
			s.Base, s.CanBonus = initial[0], false
		}
		return
	}

	var counts [Sides + 1]int
	distinct := 0
	for _, r := range initial {
		if r == Wild {
			continue
		}
		if counts[r] == 0 {
			distinct++
		}
		counts[r]++
	}
	if distinct == 0 {
		s.Base, s.CanBonus = NoBase, true
		return
	}

	// counts[NoBase] is always zero, so the first non-empty face wins and
	// only a strictly larger count displaces it.
	base := NoBase
	for v := Wild - 1; v >= 1; v-- {
		if counts[v] > counts[base] {
			base = v
		}
	}
	s.Base = base
	s.CanBonus = distinct == 1
}
