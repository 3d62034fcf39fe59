package calculator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"keypad-calculator/internal/engine"

	"github.com/google/uuid"
)

// fakeClock is a settable time source for session expiry.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore()
	s.now = clock.Now
	return s, clock
}

func TestStoreCreateReturnsAllClearSession(t *testing.T) {
	s, _ := newTestStore()

	id, st := s.Create()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected UUID session id, got %q: %v", id, err)
	}
	if st != (engine.State{Display: "0"}) {
		t.Fatalf("expected all-clear state, got %+v", st)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}
}

func TestStoreDoAppliesOperationsInOrder(t *testing.T) {
	s, _ := newTestStore()
	id, _ := s.Create()

	for _, key := range []string{"5", "+", "3", "*", "2", "="} {
		if _, err := s.Do(id, func(c *engine.Calculator) error { return c.Press(key) }); err != nil {
			t.Fatalf("pressing %q: %v", key, err)
		}
	}

	st, err := s.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Display != "16" {
		t.Fatalf("expected display %q, got %q", "16", st.Display)
	}
}

func TestStoreDoReturnsStateWithEngineError(t *testing.T) {
	s, _ := newTestStore()
	id, _ := s.Create()

	st, err := s.Do(id, func(c *engine.Calculator) error {
		for _, k := range []string{"8", "/", "0", "="} {
			if err := c.Press(k); err != nil {
				return err
			}
		}
		return nil
	})
	if !errors.Is(err, engine.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if st.Memo != "8 /" || st.Display != "0" {
		t.Fatalf("expected retry state, got %+v", st)
	}
}

func TestStoreUnknownSession(t *testing.T) {
	s, _ := newTestStore()

	if _, err := s.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Get, got %v", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Delete, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore()
	id, _ := s.Create()

	if err := s.Delete(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", s.Len())
	}
	if _, err := s.Get(id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected deleted session to be gone, got %v", err)
	}
}

func TestStoreSweepRemovesOnlyIdleSessions(t *testing.T) {
	s, clock := newTestStore()

	idle, _ := s.Create()
	clock.Advance(20 * time.Minute)
	active, _ := s.Create()
	clock.Advance(15 * time.Minute)

	if removed := s.Sweep(30 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 session swept, got %d", removed)
	}
	if _, err := s.Get(idle); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session to be swept, got %v", err)
	}
	if _, err := s.Get(active); err != nil {
		t.Fatalf("expected active session to survive, got %v", err)
	}
}

func TestStoreSweepHonoursRecentUse(t *testing.T) {
	s, clock := newTestStore()
	id, _ := s.Create()

	clock.Advance(25 * time.Minute)
	if _, err := s.Get(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(25 * time.Minute)

	if removed := s.Sweep(30 * time.Minute); removed != 0 {
		t.Fatalf("expected no sessions swept, got %d", removed)
	}
}

func TestStoreConcurrentPresses(t *testing.T) {
	s, _ := newTestStore()
	id, _ := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Do(id, func(c *engine.Calculator) error {
				c.Negate()
				return c.Press("1")
			})
		}()
	}
	wg.Wait()

	st, err := s.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Display) > engine.MaxDisplayLen {
		t.Fatalf("expected display within %d characters, got %q", engine.MaxDisplayLen, st.Display)
	}
}
