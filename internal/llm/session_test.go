package llm

import (
	"testing"
	"time"
)

func TestSessionStartsUninitialized(t *testing.T) {
	s := NewSession("instruction")
	if s.Active() {
		t.Error("new session should not be active")
	}
	if len(s.History()) != 0 {
		t.Error("new session should have empty history")
	}
	if s.ID() == "" {
		t.Error("session id missing")
	}
	if s.SystemInstruction() != "instruction" {
		t.Errorf("system instruction: got %q", s.SystemInstruction())
	}
}

func TestSessionHistoryIsACopy(t *testing.T) {
	s := NewSession("x")
	s.append(ChatMessage{Role: RoleUser, Content: "hi", Timestamp: time.Now()})

	h := s.History()
	h[0].Content = "tampered"
	if s.History()[0].Content != "hi" {
		t.Error("History returned a reference into session state")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession("x")
	oldID := s.ID()

	if err := s.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	s.release()
	s.append(
		ChatMessage{Role: RoleUser, Content: "q"},
		ChatMessage{Role: RoleAssistant, Content: "a"},
	)

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Active() {
		t.Error("reset session should be inactive")
	}
	if len(s.History()) != 0 {
		t.Error("reset session should have empty history")
	}
	if s.ID() == oldID {
		t.Error("reset should issue a new session id")
	}
}

func TestSessionResetRejectedWhileInFlight(t *testing.T) {
	s := NewSession("x")
	if err := s.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer s.release()

	err := s.Reset()
	if ReasonOf(err) != ReasonBusy {
		t.Fatalf("expected ReasonBusy, got %v (%v)", ReasonOf(err), err)
	}
}

func TestSessionSingleInFlightSlot(t *testing.T) {
	s := NewSession("x")
	if err := s.acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := s.acquire(); ReasonOf(err) != ReasonBusy {
		t.Fatalf("second acquire: expected ReasonBusy, got %v", err)
	}
	s.release()
	if err := s.acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}
