package statemachine

import (
	"errors"

	"restaurant-ordering-api/models"
)

// ErrInvalidTransition is returned for any requested status change that is
// not the single next step in the order lifecycle.
var ErrInvalidTransition = errors.New("invalid transition")

// sequence is the authoritative order lifecycle. Status only ever moves one
// step forward through it: no skips, no backward moves, Served is terminal.
var sequence = []models.OrderStatus{
	models.StatusPending,
	models.StatusRecieved,
	models.StatusServed,
}

var rank = func() map[models.OrderStatus]int {
	m := make(map[models.OrderStatus]int, len(sequence))
	for i, s := range sequence {
		m[s] = i
	}
	return m
}()

// IsValidStatus reports whether s is one of the known lifecycle states.
func IsValidStatus(s models.OrderStatus) bool {
	_, ok := rank[s]
	return ok
}

// IsTerminal reports whether no further transitions are possible from s.
func IsTerminal(s models.OrderStatus) bool {
	r, ok := rank[s]
	return ok && r == len(sequence)-1
}

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	r, ok := rank[status]
	if !ok || r == len(sequence)-1 {
		return nil
	}
	return []models.OrderStatus{sequence[r+1]}
}

// CanTransition checks whether an order may move from one state to another.
func CanTransition(from, to models.OrderStatus) error {
	fromRank, ok := rank[from]
	if !ok {
		return errors.New("unknown current status: " + string(from))
	}
	toRank, ok := rank[to]
	if !ok {
		return errors.New("unknown requested status: " + string(to))
	}
	if toRank != fromRank+1 {
		return ErrInvalidTransition
	}
	return nil
}

// Describe renders the valid next states for error messages and docs.
func Describe(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// Sequence returns the full lifecycle in order, for the docs endpoint.
func Sequence() []models.OrderStatus {
	out := make([]models.OrderStatus, len(sequence))
	copy(out, sequence)
	return out
}
