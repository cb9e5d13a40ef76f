package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "dice.db"))
	require.NoError(t, err)
	mem := NewMemoryStore()
	t.Cleanup(func() {
		_ = sq.Close()
		_ = mem.Close()
	})
	return map[string]Store{"memory": mem, "sqlite": sq}
}

func TestStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := &Session{
				ID:        "abc",
				Game:      dice.State{Rolls: []int{5, 5, 6}, NumDice: 3, Base: 5, CanBonus: true},
				UpdatedAt: time.Now().UTC(),
			}
			require.NoError(t, st.Save(ctx, in))

			got, err := st.Get(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, in.Game, got.Game)
			assert.WithinDuration(t, in.UpdatedAt, got.UpdatedAt, time.Millisecond)

			in.Game.Rolls = append(in.Game.Rolls, 2)
			in.Game.CanBonus = false
			require.NoError(t, st.Save(ctx, in))
			got, err = st.Get(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, []int{5, 5, 6, 2}, got.Game.Rolls)
			assert.False(t, got.Game.CanBonus)
		})
	}
}

func TestStoreUnresolvedBase(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Save(ctx, &Session{ID: "wild", Game: dice.State{Rolls: []int{6}, NumDice: 1, CanBonus: true}}))
			got, err := st.Get(ctx, "wild")
			require.NoError(t, err)
			assert.False(t, got.Game.Resolved())
			assert.True(t, got.Game.CanBonus)
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestStoreNotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Save(ctx, &Session{ID: "gone", Game: dice.State{Rolls: []int{1}, NumDice: 1, Base: 1}}))
			require.NoError(t, st.Delete(ctx, "gone"))
			_, err = st.Get(ctx, "gone")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, st.Delete(ctx, "never-existed"))
		})
	}
}

func TestStoreRejectsInvalidSession(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, st.Save(ctx, nil), ErrInvalidSession)
			assert.ErrorIs(t, st.Save(ctx, &Session{}), ErrInvalidSession)
		})
	}
}

func TestStorePrune(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Save(ctx, &Session{ID: "old", UpdatedAt: now.Add(-2 * time.Hour)}))
			require.NoError(t, st.Save(ctx, &Session{ID: "new", UpdatedAt: now}))

			n, err := st.Prune(ctx, now.Add(-time.Hour))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			_, err = st.Get(ctx, "old")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = st.Get(ctx, "new")
			assert.NoError(t, err)
		})
	}
}

func TestMemoryStoreCopiesState(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	in := &Session{ID: "x", Game: dice.State{Rolls: []int{2, 2}, NumDice: 2, Base: 2, CanBonus: true}}
	require.NoError(t, st.Save(ctx, in))
	in.Game.Rolls[0] = 4

	got, err := st.Get(ctx, "x")
	require.NoError(t, err)
	got.Game.Rolls[1] = 3

	again, err := st.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, again.Game.Rolls)
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dice.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}

func TestJanitorPrunesUntilCancelled(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, st.Save(ctx, &Session{ID: "stale", UpdatedAt: time.Now().Add(-time.Hour)}))

	done := StartJanitor(ctx, st, time.Minute, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := st.Get(context.Background(), "stale")
		return err == ErrNotFound
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
