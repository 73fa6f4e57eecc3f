package app

import (
	"sync"

	"live-quiz-show/internal/domain"
)

// SessionStatus is the lifecycle position of a show session.
type SessionStatus string

const (
	StatusClosed    SessionStatus = "closed"
	StatusOpen      SessionStatus = "open"
	StatusCompleted SessionStatus = "completed"
)

// Session is the live state of one game: its record, display sequence,
// cursor and timers. All fields are guarded by mu and mutated only by
// ShowService.
type Session struct {
	id string

	mu     sync.Mutex
	status SessionStatus

	// epoch changes on every transition; timer callbacks compare it before acting.
	epoch      uint64
	record     domain.GameRecord
	seq        domain.GameSequence
	last       *domain.DisplayItem
	adHoc      bool // last is a one-off screen, not the cursor item
	pageOffset int
	advance    Timer
	refresh    Timer
}

// NewSession is exported for infrastructure layers that keep session registries.
func NewSession(id string) *Session {
	return &Session{id: id, status: StatusClosed}
}

// ID returns the game id the session belongs to.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle position.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) stopTimersLocked() {
	s.stopAdvanceLocked()
	s.stopRefreshLocked()
}

func (s *Session) stopAdvanceLocked() {
	if s.advance != nil {
		s.advance.Stop()
		s.advance = nil
	}
}

func (s *Session) stopRefreshLocked() {
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
}

// Snapshot is a read-only view of a session for admin screens.
type Snapshot struct {
	GameID    string              `json:"gameId"`
	GameTitle string              `json:"gameTitle"`
	Status    SessionStatus       `json:"status"`
	Cursor    int                 `json:"cursor"`
	Items     int                 `json:"items"`
	Current   *domain.DisplayItem `json:"current,omitempty"`
	State     domain.SessionState `json:"state"`
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		GameID:    s.id,
		GameTitle: s.record.Title,
		Status:    s.status,
		Cursor:    s.seq.Cursor,
		Items:     len(s.seq.Items),
		State:     s.record.SessionState,
	}
	if s.last != nil {
		item := *s.last
		snap.Current = &item
	}
	return snap
}
