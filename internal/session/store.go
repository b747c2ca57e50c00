package session

import (
	"sync"
	"time"

	"atscheck-backend/internal/analysis"
)

// Store holds sessions in memory keyed by user ID. Reads return copies so
// callers never share mutable state across goroutines.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Get returns a copy of the user's session.
func (s *Store) Get(userID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return copySession(sess), true
}

// Save stores the session, stamping UpdatedAt.
func (s *Store) Save(sess Session) {
	sess.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = copySession(sess)
}

// Delete removes the user's session.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func copySession(sess Session) Session {
	out := sess
	if sess.Improved != nil {
		out.Improved = make(map[string]string, len(sess.Improved))
		for k, v := range sess.Improved {
			out.Improved[k] = v
		}
	}
	if sess.Analysis != nil {
		a := *sess.Analysis
		a.Sections = make(map[string]analysis.SectionAnalysis, len(sess.Analysis.Sections))
		for name, sec := range sess.Analysis.Sections {
			a.Sections[name] = sec
		}
		out.Analysis = &a
	}
	return out
}
