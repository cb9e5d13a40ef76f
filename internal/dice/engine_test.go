package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollProducesRequestedDiceInRange(t *testing.T) {
	eng := New(NewSeededSource(42))
	for n := 1; n <= 30; n++ {
		s := eng.Roll(n)
		require.Len(t, s.Rolls, n)
		assert.Equal(t, n, s.NumDice)
		for _, r := range s.Rolls {
			assert.GreaterOrEqual(t, r, 1)
			assert.LessOrEqual(t, r, Sides)
		}
	}
}

func TestRollDefaultSource(t *testing.T) {
	s := New(nil).Roll(5)
	require.Len(t, s.Rolls, 5)
	for _, r := range s.Rolls {
		assert.True(t, r >= 1 && r <= Sides, "roll out of range: %d", r)
	}
}

func TestRollEvaluation(t *testing.T) {
	tests := []struct {
		name     string
		rolls    []int
		base     int
		canBonus bool
	}{
		{"single six stays open", []int{6}, NoBase, true},
		{"single non-six is final", []int{4}, 4, false},
		{"all sixes", []int{6, 6, 6}, NoBase, true},
		{"strict match with wild", []int{5, 5, 6}, 5, true},
		{"all equal", []int{2, 2, 2, 2}, 2, true},
		{"one non-six among sixes", []int{6, 3, 6}, 3, true},
		{"majority with stray value", []int{4, 4, 2}, 4, false},
		{"majority ignores wilds", []int{4, 6, 4, 2, 6}, 4, false},
		{"tie goes to larger value", []int{1, 3, 1, 3}, 3, false},
		{"tie with wilds", []int{2, 6, 5}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(NewFixed(tt.rolls...)).Roll(len(tt.rolls))
			assert.Equal(t, tt.rolls, s.Rolls)
			assert.Equal(t, tt.base, s.Base)
			assert.Equal(t, tt.canBonus, s.CanBonus)
		})
	}
}

func TestBonusResolvesBaseFromSingleSix(t *testing.T) {
	eng := New(NewFixed(6, 3, 5))

	s := eng.Roll(1)
	require.True(t, s.CanBonus)
	require.False(t, s.Resolved())

	require.True(t, eng.Bonus(&s))
	assert.Equal(t, 3, s.Base)
	assert.True(t, s.CanBonus)

	require.True(t, eng.Bonus(&s))
	assert.Equal(t, 3, s.Base)
	assert.False(t, s.CanBonus)
	assert.Equal(t, []int{6, 3, 5}, s.Rolls)
}

func TestBonusContinuesOnBaseOrWild(t *testing.T) {
	eng := New(NewFixed(5, 5, 6, 6, 5, 2))
	s := eng.Roll(3)
	require.Equal(t, 5, s.Base)

	for _, want := range []int{6, 5} {
		require.True(t, eng.Bonus(&s))
		assert.Equal(t, want, s.Rolls[len(s.Rolls)-1])
		assert.True(t, s.CanBonus)
	}
	require.True(t, eng.Bonus(&s))
	assert.False(t, s.CanBonus)
	assert.Equal(t, 5, s.Base)
}

func TestBonusAllSixesStaysOpen(t *testing.T) {
	eng := New(NewFixed(6, 6, 6))
	s := eng.Roll(2)
	require.True(t, eng.Bonus(&s))
	assert.False(t, s.Resolved())
	assert.True(t, s.CanBonus)
}

func TestBonusIsNoOpWhenClosed(t *testing.T) {
	eng := New(NewFixed(4, 4, 2, 1))
	s := eng.Roll(3)
	require.False(t, s.CanBonus)
	before := s.Clone()

	assert.False(t, eng.Bonus(&s))
	assert.Equal(t, before, s)
	assert.False(t, eng.Bonus(nil))
}

func TestEvaluateReplaysBonusDice(t *testing.T) {
	s := State{Rolls: []int{6, 3, 6, 3, 1, 3}, NumDice: 1}
	s.Evaluate()
	assert.Equal(t, 3, s.Base)
	assert.False(t, s.CanBonus)

	s = State{Rolls: []int{2, 2, 6, 2}, NumDice: 2}
	s.Evaluate()
	assert.Equal(t, 2, s.Base)
	assert.True(t, s.CanBonus)

	s = State{}
	s.Evaluate()
	assert.False(t, s.CanBonus)
}

func TestCloneDoesNotShareRolls(t *testing.T) {
	s := State{Rolls: []int{1, 2}, NumDice: 2}
	c := s.Clone()
	c.Rolls[0] = 6
	assert.Equal(t, 1, s.Rolls[0])
}

func TestRollNonPositiveIsEmpty(t *testing.T) {
	s := New(NewFixed(6)).Roll(0)
	assert.False(t, s.Started())
	assert.False(t, s.CanBonus)
}
