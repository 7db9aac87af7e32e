package state_test

import (
	"sync"
	"testing"

	"github.com/Freeeeeet/booking_bot/internal/controller/state"
)

func TestManager_StateTransitions(t *testing.T) {
	sm := state.NewManager()

	if got := sm.GetState(1); got != state.StateNone {
		t.Fatalf("expected StateNone for unknown user, got %q", got)
	}

	sm.SetState(1, state.StateChoosingDate)
	if got := sm.GetState(1); got != state.StateChoosingDate {
		t.Fatalf("expected StateChoosingDate, got %q", got)
	}

	sm.SetState(1, state.StateChoosingTime)
	sm.SetData(1, state.KeyChosenDate, "2025-09-01")

	date, ok := sm.GetData(1, state.KeyChosenDate)
	if !ok || date != "2025-09-01" {
		t.Fatalf("expected chosen date, got %q (%v)", date, ok)
	}
}

func TestManager_ClearState(t *testing.T) {
	sm := state.NewManager()
	sm.SetState(1, state.StateChoosingTime)
	sm.SetData(1, state.KeyChosenDate, "2025-09-01")

	sm.ClearState(1)

	if got := sm.GetState(1); got != state.StateNone {
		t.Fatalf("expected StateNone after clear, got %q", got)
	}
	if _, ok := sm.GetData(1, state.KeyChosenDate); ok {
		t.Fatal("data must be gone after clear")
	}
}

func TestManager_SetNoneDeletes(t *testing.T) {
	sm := state.NewManager()
	sm.SetState(1, state.StateChoosingDate)
	sm.SetData(1, state.KeyChosenDate, "2025-09-01")

	sm.SetState(1, state.StateNone)

	if _, ok := sm.GetData(1, state.KeyChosenDate); ok {
		t.Fatal("setting StateNone must drop dialog data")
	}
}

func TestManager_UsersAreIndependent(t *testing.T) {
	sm := state.NewManager()
	sm.SetState(1, state.StateChoosingDate)
	sm.SetState(2, state.StateChoosingTime)

	sm.ClearState(1)

	if got := sm.GetState(2); got != state.StateChoosingTime {
		t.Fatalf("clearing user 1 must not touch user 2, got %q", got)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	sm := state.NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, state.StateChoosingDate)
			sm.SetData(id, state.KeyChosenDate, "2025-09-01")
			sm.GetState(id)
			sm.ClearState(id)
		}(int64(i))
	}
	wg.Wait()
}
