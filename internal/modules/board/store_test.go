package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("create loads and registers a board", func(t *testing.T) {
		api := &fakeAPI{collection: chessClub}
		s := NewStore(api, Options{}, time.Hour)
		defer s.Close()

		b := s.Create(context.Background())
		require.NotNil(t, b)
		assert.NotEmpty(t, b.ID())
		assert.True(t, b.Loaded())
		assert.Equal(t, 1, api.listCalls)
		assert.Equal(t, 1, s.Len())

		got, ok := s.Get(b.ID())
		require.True(t, ok)
		assert.Same(t, b, got)
		assert.True(t, s.Has(b.ID()))
	})

	t.Run("each page load gets its own board", func(t *testing.T) {
		s := NewStore(&fakeAPI{collection: chessClub}, Options{}, time.Hour)
		defer s.Close()

		a := s.Create(context.Background())
		b := s.Create(context.Background())
		assert.NotEqual(t, a.ID(), b.ID())

		_, err := a.SubmitSignup(context.Background(), "b@x.com", "Chess Club")
		require.NoError(t, err)

		chess, _ := b.Snapshot().Get("Chess Club")
		assert.Equal(t, []string{"a@x.com"}, chess.Participants)
	})

	t.Run("failed load still creates a board", func(t *testing.T) {
		s := NewStore(&fakeAPI{listErr: assert.AnError}, Options{}, time.Hour)
		defer s.Close()

		b := s.Create(context.Background())
		assert.NotEmpty(t, b.View().LoadError)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("unknown ids are missing", func(t *testing.T) {
		s := NewStore(&fakeAPI{}, Options{}, time.Hour)
		_, ok := s.Get("nope")
		assert.False(t, ok)
		assert.False(t, s.Has("nope"))
	})

	t.Run("evicts idle boards only", func(t *testing.T) {
		s := NewStore(&fakeAPI{collection: chessClub}, Options{}, time.Minute)
		defer s.Close()

		idle := s.Create(context.Background())
		fresh := s.Create(context.Background())

		now := time.Now()
		idle.touch(now.Add(-2 * time.Minute))
		fresh.touch(now)

		assert.Equal(t, 1, s.Evict(now))
		assert.False(t, s.Has(idle.ID()))
		assert.True(t, s.Has(fresh.ID()))
	})

	t.Run("close empties the store", func(t *testing.T) {
		s := NewStore(&fakeAPI{collection: chessClub}, Options{}, time.Hour)
		s.Create(context.Background())
		s.Create(context.Background())

		s.Close()
		assert.Zero(t, s.Len())
	})

	t.Run("run stops with its context", func(t *testing.T) {
		s := NewStore(&fakeAPI{}, Options{}, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			s.Run(ctx, 10*time.Millisecond)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}
