package termview

import (
	"sync"

	"snakenet/internal/engine"
)

// PressTurn is the heading change queued by one key press. Terminals report
// presses, not held keys, so each press is spread over several ticks.
const PressTurn = 3 * engine.TurnStep

// Steering queues key presses from the UI goroutine for the tick goroutine.
type Steering struct {
	mu      sync.Mutex
	pending []float64
}

func NewSteering(players int) *Steering {
	return &Steering{pending: make([]float64, players)}
}

// Press queues a turn for player: dir < 0 turns left, dir > 0 right.
func (s *Steering) Press(player int, dir int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player < 0 || player >= len(s.pending) {
		return
	}
	switch {
	case dir < 0:
		s.pending[player] -= PressTurn
	case dir > 0:
		s.pending[player] += PressTurn
	}
}

// Take returns this tick's turn per player, at most one TurnStep each, and
// removes it from the queue.
func (s *Steering) Take() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]float64, len(s.pending))
	for i, p := range s.pending {
		t := max(-engine.TurnStep, min(engine.TurnStep, p))
		turns[i] = t
		s.pending[i] = p - t
	}
	return turns
}
