package journey

import "sync"

// State is the lifecycle of one visit.
type State int

const (
	Idle State = iota
	Playing
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Store owns the journey state. Transitions only move forward:
// Idle -> Playing on Begin, Playing -> Ended on SetEnded(true).
// Listeners run once per edge, outside the lock, on the goroutine that caused it.
type Store struct {
	mu    sync.RWMutex
	state State

	onBegin []func()
	onEnd   []func()
}

// NewStore returns an idle store.
func NewStore() *Store {
	return &Store{}
}

// OnBegin registers fn for the Idle -> Playing edge.
func (s *Store) OnBegin(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBegin = append(s.onBegin, fn)
}

// OnEnd registers fn for the Playing -> Ended edge.
func (s *Store) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = append(s.onEnd, fn)
}

// Begin starts the journey. Returns true only on the call that made the transition.
func (s *Store) Begin() bool {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return false
	}
	s.state = Playing
	fns := append([]func(){}, s.onBegin...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// SetEnded marks the journey as finished. Ending is permanent: false is
// ignored, and so is true before the journey started.
func (s *Store) SetEnded(ended bool) bool {
	if !ended {
		return false
	}
	s.mu.Lock()
	if s.state != Playing {
		s.mu.Unlock()
		return false
	}
	s.state = Ended
	fns := append([]func(){}, s.onEnd...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Playing reports whether the journey has begun. Stays true after the end,
// the same way the play flag does in the overlay.
func (s *Store) Playing() bool {
	return s.State() != Idle
}

// Ended reports whether the camera passed the end of the path.
func (s *Store) Ended() bool {
	return s.State() == Ended
}

// ScrollEnabled is true only while Playing.
func (s *Store) ScrollEnabled() bool {
	return s.State() == Playing
}
