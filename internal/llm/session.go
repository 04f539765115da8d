package llm

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Session holds one ongoing chat conversation: a fixed system instruction
// and an append-only message history. A session starts uninitialized and
// becomes active on the first message sent through it; Reset discards all
// conversation state and returns it to the uninitialized state under a new
// id. At most one chat request may be in flight per session: a concurrent
// second send is rejected with ReasonBusy.
type Session struct {
	mu       sync.Mutex
	id       string
	system   string
	history  []ChatMessage
	active   bool
	inflight bool
}

// NewSession creates an uninitialized session with the given system
// instruction.
func NewSession(systemInstruction string) *Session {
	return &Session{
		id:     uuid.NewString(),
		system: systemInstruction,
	}
}

// ID returns the session identifier. Reset issues a new one.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// SystemInstruction returns the fixed system instruction.
func (s *Session) SystemInstruction() string {
	return s.system
}

// Active reports whether at least one message has been sent through the
// session since creation or the last Reset.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// History returns a copy of the conversation so far.
func (s *Session) History() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Reset discards all conversation state. Prior history is dropped, not
// merged or replayed; the session id changes. A reset while a request is in
// flight is rejected.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight {
		return callError(ReasonBusy, errors.New("chat request in flight"))
	}
	s.id = uuid.NewString()
	s.history = nil
	s.active = false
	return nil
}

// acquire gates the single-slot send: it marks the session active and
// in flight, or rejects when a prior send has not resolved yet.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight {
		return callError(ReasonBusy, errors.New("previous chat request still pending"))
	}
	s.inflight = true
	s.active = true
	return nil
}

// release clears the in-flight slot.
func (s *Session) release() {
	s.mu.Lock()
	s.inflight = false
	s.mu.Unlock()
}

// append records a completed exchange.
func (s *Session) append(msgs ...ChatMessage) {
	s.mu.Lock()
	s.history = append(s.history, msgs...)
	s.mu.Unlock()
}
