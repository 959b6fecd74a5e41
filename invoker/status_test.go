package invoker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotEmpty(t *testing.T) {
	_, ok := NewSlot(true).Current()
	assert.False(t, ok)
}

func TestSlotDiscardsStale(t *testing.T) {
	s := NewSlot(true)
	require.True(t, s.Publish(Result{Seq: 2, Message: "b"}))
	assert.False(t, s.Publish(Result{Seq: 1, Message: "a"}))
	assert.True(t, s.Publish(Result{Seq: 3, Message: "c"}))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.Message)
}

func TestSlotLastWriterWins(t *testing.T) {
	s := NewSlot(false)
	require.True(t, s.Publish(Result{Seq: 2, Message: "b"}))
	require.True(t, s.Publish(Result{Seq: 1, Message: "a"}))

	cur, _ := s.Current()
	assert.Equal(t, "a", cur.Message)
}

func TestSlotOverwritesNeverMerges(t *testing.T) {
	s := NewSlot(true)
	s.Publish(Result{Seq: 1, Outcome: Success, Message: "Reservas", Values: nil})
	s.Publish(Result{Seq: 2, Outcome: Failure, Message: "Error"})

	cur, _ := s.Current()
	assert.Equal(t, Failure, cur.Outcome)
	assert.Nil(t, cur.Values)
	assert.Equal(t, "failure", cur.Outcome.String())
}
