package ai

import (
	"context"
	"testing"
	"time"

	"tabletalk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUnseenSessionIsNil(t *testing.T) {
	store := NewMemorySessionStore(0)

	sess, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemorySessionStore(0)

	sess := models.NewSession("abc")
	sess.Append(models.Turn{Role: models.RoleUser, Content: "hello"})
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Turns, 1)
	assert.Equal(t, "hello", got.Turns[0].Content)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemorySessionStore(0)

	sess := models.NewSession("abc")
	sess.Append(models.Turn{Role: models.RoleUser, Content: "hello"})
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	got.Append(models.Turn{Role: models.RoleAssistant, Content: "local only"})

	again, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Len(t, again.Turns, 1, "mutating a returned session must not touch the store")
}

func TestSessionLocksSerializeSameSession(t *testing.T) {
	var locks sessionLocks

	unlock := locks.acquire("s1")

	done := make(chan struct{})
	go func() {
		u := locks.acquire("s1")
		u()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second acquire for the same session must block")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second acquire never proceeded after release")
	}
}

func TestSessionLocksAllowDistinctSessions(t *testing.T) {
	var locks sessionLocks

	unlockA := locks.acquire("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		u := locks.acquire("b")
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("distinct sessions must not block each other")
	}
}
