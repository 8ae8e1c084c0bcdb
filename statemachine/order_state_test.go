package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ordering-api/models"
)

func TestForwardTransitions(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusRecieved))
	require.NoError(t, CanTransition(models.StatusRecieved, models.StatusServed))
}

func TestNoSkippingStates(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusServed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNoBackwardTransitions(t *testing.T) {
	assert.ErrorIs(t, CanTransition(models.StatusRecieved, models.StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(models.StatusServed, models.StatusRecieved), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(models.StatusServed, models.StatusPending), ErrInvalidTransition)
}

func TestSelfTransitionRejected(t *testing.T) {
	assert.ErrorIs(t, CanTransition(models.StatusPending, models.StatusPending), ErrInvalidTransition)
}

func TestUnknownStates(t *testing.T) {
	assert.Error(t, CanTransition("Cooking", models.StatusServed))
	assert.Error(t, CanTransition(models.StatusPending, "Cancelled"))
}

func TestServedIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusServed))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusRecieved))
	assert.Empty(t, ValidTransitionsFrom(models.StatusServed))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusRecieved}, ValidTransitionsFrom(models.StatusPending))
	assert.Equal(t, []models.OrderStatus{models.StatusServed}, ValidTransitionsFrom(models.StatusRecieved))
	assert.Nil(t, ValidTransitionsFrom("Bogus"))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(models.StatusPending))
	assert.True(t, IsValidStatus(models.StatusRecieved))
	assert.True(t, IsValidStatus(models.StatusServed))
	assert.False(t, IsValidStatus("Received")) // the correctly spelled variant is not on the wire
}

func TestSequenceIsACopy(t *testing.T) {
	seq := Sequence()
	require.Len(t, seq, 3)
	seq[0] = "Mutated"
	assert.Equal(t, models.StatusPending, Sequence()[0])
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Recieved", Describe(models.StatusPending))
	assert.Equal(t, "none (terminal state)", Describe(models.StatusServed))
}
