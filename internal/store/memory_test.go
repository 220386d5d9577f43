package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/robalobadob/wordle/apps/session-server/internal/game"
	"github.com/robalobadob/wordle/apps/session-server/internal/words"
)

func newSession(t *testing.T, opts ...game.Option) *game.Session {
	t.Helper()
	s, err := game.New(words.Fixed{Secret: "APPLE"}, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestSaveGetUpdate(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	is.NoErr(st.Save(ctx, s))

	is.NoErr(st.Update(ctx, s.ID(), func(s *game.Session) error {
		return s.SubmitGuess("GUESS")
	}))
	is.NoErr(st.Get(ctx, s.ID(), func(s *game.Session) error {
		is.Equal(s.CurrentGuess(), 1)
		return nil
	}))

	err := st.Get(ctx, "missing", func(*game.Session) error { return nil })
	is.True(errors.Is(err, ErrNotFound))
	err = st.Update(ctx, "missing", func(*game.Session) error { return nil })
	is.True(errors.Is(err, ErrNotFound))
}

func TestUpdatePropagatesError(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t, game.WithMaxGuesses(1))
	is.NoErr(st.Save(ctx, s))

	submit := func(s *game.Session) error { return s.SubmitGuess("GUESS") }
	is.NoErr(st.Update(ctx, s.ID(), submit))
	is.True(errors.Is(st.Update(ctx, s.ID(), submit), game.ErrOutOfGuesses))
}

func TestConcurrentUpdates(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t, game.WithMaxGuesses(50))
	is.NoErr(st.Save(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, s.ID(), func(s *game.Session) error { return s.SubmitGuess("GUESS") })
		}()
	}
	wg.Wait()

	is.NoErr(st.Get(ctx, s.ID(), func(s *game.Session) error {
		is.Equal(s.CurrentGuess(), 50)
		return nil
	}))
}

func TestSweepAndDelete(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	st := newMemory(func() time.Time { return now })

	old, fresh := newSession(t), newSession(t)
	is.NoErr(st.Save(ctx, old))
	now = now.Add(time.Hour)
	is.NoErr(st.Save(ctx, fresh))

	n, err := st.Sweep(ctx, 30*time.Minute)
	is.NoErr(err)
	is.Equal(n, 1)

	noop := func(*game.Session) error { return nil }
	is.True(errors.Is(st.Get(ctx, old.ID(), noop), ErrNotFound))
	is.NoErr(st.Get(ctx, fresh.ID(), noop))

	is.NoErr(st.Delete(ctx, fresh.ID()))
	is.True(errors.Is(st.Get(ctx, fresh.ID(), noop), ErrNotFound))
}
