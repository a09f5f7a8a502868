package service

import (
	"testing"
)

func TestSessionServicePutAndWith(t *testing.T) {
	sessions := NewSessionService()
	state := &SessionState{TotalChunks: 7}

	id := sessions.Put("", state)
	if id == "" {
		t.Fatal("expected a generated session id")
	}

	var got *SessionState
	if err := sessions.With(id, func(s *SessionState) error {
		got = s
		return nil
	}); err != nil {
		t.Fatalf("With error: %v", err)
	}
	if got != state {
		t.Fatal("expected the stored state")
	}
}

func TestSessionServiceUnknownIDRunsWithNil(t *testing.T) {
	sessions := NewSessionService()
	called := false
	err := sessions.With("no-such-session", func(s *SessionState) error {
		called = true
		if s != nil {
			t.Fatal("unknown session must yield nil state")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With error: %v", err)
	}
	if !called {
		t.Fatal("callback must run for unknown sessions")
	}
}

func TestSessionServiceReplaceState(t *testing.T) {
	sessions := NewSessionService()
	first := &SessionState{TotalChunks: 1}
	second := &SessionState{TotalChunks: 2}

	id := sessions.Put("", first)
	if got := sessions.Put(id, second); got != id {
		t.Fatalf("replacing a slot must keep the id, got %q", got)
	}

	sessions.With(id, func(s *SessionState) error {
		if s != second {
			t.Fatal("expected the replacement state")
		}
		return nil
	})
}

func TestSessionServiceDelete(t *testing.T) {
	sessions := NewSessionService()
	id := sessions.Put("", &SessionState{})

	if err := sessions.Delete(id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := sessions.Delete(id); err == nil {
		t.Fatal("deleting twice must fail")
	}
}
