package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/Freeeeeet/booking_bot/internal/service"
	"go.uber.org/zap"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory SlotStore fixture
// ─────────────────────────────────────────────────────────────────────────────

// memSlotStore повторяет контракт SlotStore: проверка и запись под одним
// мьютексом, как условный UPDATE в Postgres-реализации.
type memSlotStore struct {
	mu    sync.Mutex
	slots map[string]*model.Slot
	order []string
}

func newMemSlotStore() *memSlotStore {
	return &memSlotStore{slots: make(map[string]*model.Slot)}
}

func slotKey(date time.Time, slotTime string) string {
	return date.Format(model.DateLayout) + "|" + slotTime
}

func (m *memSlotStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.slots)), nil
}

func (m *memSlotStore) CreateSlots(ctx context.Context, slots []model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range slots {
		key := slotKey(s.Date, s.Time)
		if _, exists := m.slots[key]; exists {
			continue
		}
		slot := s
		m.slots[key] = &slot
		m.order = append(m.order, key)
	}
	sort.Strings(m.order)
	return nil
}

func (m *memSlotStore) FreeTimes(ctx context.Context, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var times []string
	for _, key := range m.order {
		s := m.slots[key]
		if s.DateKey() == date.Format(model.DateLayout) && s.IsFree() {
			times = append(times, s.Time)
		}
	}
	return times, nil
}

func (m *memSlotStore) ListRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fromKey := from.Format(model.DateLayout)
	toKey := to.Format(model.DateLayout)
	var out []*model.Slot
	for _, key := range m.order {
		s := m.slots[key]
		if s.DateKey() >= fromKey && s.DateKey() <= toKey {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSlotStore) ListReservedBy(ctx context.Context, userID int64) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Slot
	for _, key := range m.order {
		s := m.slots[key]
		if s.ReservedBy != nil && *s.ReservedBy == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSlotStore) Reserve(ctx context.Context, date time.Time, slotTime string, userID int64, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, exists := m.slots[slotKey(date, slotTime)]
	if !exists {
		return model.ErrSlotNotFound
	}
	if s.ReservedBy != nil {
		return model.ErrSlotTaken
	}
	s.ReservedBy = &userID
	s.ReservationRef = &ref
	return nil
}

func (m *memSlotStore) Release(ctx context.Context, date time.Time, slotTime string, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, exists := m.slots[slotKey(date, slotTime)]
	if !exists {
		return model.ErrSlotNotFound
	}
	if s.ReservedBy == nil || *s.ReservedBy != userID {
		return model.ErrNotOwner
	}
	s.ReservedBy = nil
	s.ReservationRef = nil
	return nil
}

func (m *memSlotStore) ForceRelease(ctx context.Context, date time.Time, slotTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, exists := m.slots[slotKey(date, slotTime)]
	if !exists {
		return model.ErrSlotNotFound
	}
	if s.ReservedBy == nil {
		return model.ErrNotOwner
	}
	s.ReservedBy = nil
	s.ReservationRef = nil
	return nil
}

func (m *memSlotStore) owner(t *testing.T, date time.Time, slotTime string) *int64 {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	s, exists := m.slots[slotKey(date, slotTime)]
	if !exists {
		t.Fatalf("slot %s %s does not exist", date.Format(model.DateLayout), slotTime)
	}
	return s.ReservedBy
}

func newTestBookingService(t *testing.T) (*service.BookingService, *memSlotStore) {
	t.Helper()
	store := newMemSlotStore()
	return service.NewBookingService(store, zap.NewNop()), store
}

func seedDay(t *testing.T, store *memSlotStore, date time.Time, times ...string) {
	t.Helper()
	var slots []model.Slot
	for _, tm := range times {
		slots = append(slots, model.Slot{Date: date, Time: tm})
	}
	if err := store.CreateSlots(context.Background(), slots); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

var day1 = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // понедельник

const (
	alice int64 = 100
	bob   int64 = 200
)

// ─────────────────────────────────────────────────────────────────────────────
// Reserve / Release
// ─────────────────────────────────────────────────────────────────────────────

func TestBookingService_ReserveScenario(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00", "17:00")

	ref, err := svc.Reserve(ctx, alice, day1, "16:00")
	if err != nil {
		t.Fatalf("reserve by alice: %v", err)
	}
	if ref == "" {
		t.Fatal("expected non-empty reservation ref")
	}

	if _, err := svc.Reserve(ctx, bob, day1, "16:00"); !errors.Is(err, model.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for bob, got %v", err)
	}

	times, err := svc.FreeTimes(ctx, day1)
	if err != nil {
		t.Fatalf("free times: %v", err)
	}
	if len(times) != 1 || times[0] != "17:00" {
		t.Fatalf("expected [17:00], got %v", times)
	}

	// Не-владелец не меняет состояние
	if err := svc.Release(ctx, bob, day1, "16:00"); !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for bob, got %v", err)
	}
	if owner := store.owner(t, day1, "16:00"); owner == nil || *owner != alice {
		t.Fatalf("reservation must be untouched after non-owner release, owner=%v", owner)
	}

	if err := svc.Release(ctx, alice, day1, "16:00"); err != nil {
		t.Fatalf("release by alice: %v", err)
	}

	times, err = svc.FreeTimes(ctx, day1)
	if err != nil {
		t.Fatalf("free times: %v", err)
	}
	if len(times) != 2 || times[0] != "16:00" || times[1] != "17:00" {
		t.Fatalf("expected [16:00 17:00], got %v", times)
	}
}

func TestBookingService_Reserve_UnknownSlot(t *testing.T) {
	svc, store := newTestBookingService(t)
	seedDay(t, store, day1, "16:00")

	if _, err := svc.Reserve(context.Background(), alice, day1, "23:00"); !errors.Is(err, model.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestBookingService_ReleaseThenReserveByOther(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00")

	if _, err := svc.Reserve(ctx, alice, day1, "16:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := svc.Release(ctx, alice, day1, "16:00"); err != nil {
		t.Fatalf("release: %v", err)
	}

	// Слот действительно свободен после release
	if _, err := svc.Reserve(ctx, bob, day1, "16:00"); err != nil {
		t.Fatalf("reserve after release: %v", err)
	}
	if owner := store.owner(t, day1, "16:00"); owner == nil || *owner != bob {
		t.Fatalf("expected bob as owner, got %v", owner)
	}
}

func TestBookingService_ReleaseByOperator(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00")

	if _, err := svc.Reserve(ctx, alice, day1, "16:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if err := svc.ReleaseByOperator(ctx, day1, "16:00"); err != nil {
		t.Fatalf("operator release: %v", err)
	}
	if owner := store.owner(t, day1, "16:00"); owner != nil {
		t.Fatalf("expected free slot, owner=%v", owner)
	}

	// Повторное снятие - ожидаемый no-op исход
	if err := svc.ReleaseByOperator(ctx, day1, "16:00"); !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on already free slot, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Concurrency: одна пара (дата, время) достаётся ровно одному
// ─────────────────────────────────────────────────────────────────────────────

func TestBookingService_ConcurrentReserve_SingleWinner(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00")

	const callers = 50

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := svc.Reserve(ctx, userID, day1, "16:00")
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, model.ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", wins)
	}
	if conflicts != callers-1 {
		t.Fatalf("expected %d conflicts, got %d", callers-1, conflicts)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Listing
// ─────────────────────────────────────────────────────────────────────────────

func TestBookingService_FreeTimes_UnknownDate(t *testing.T) {
	svc, store := newTestBookingService(t)
	seedDay(t, store, day1, "16:00")

	// Дата вне горизонта - пустой список, не ошибка
	times, err := svc.FreeTimes(context.Background(), day1.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("free times: %v", err)
	}
	if len(times) != 0 {
		t.Fatalf("expected empty result, got %v", times)
	}
}

func TestBookingService_FreeTimes_NeverIncludesReserved(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00", "17:00", "18:00")

	if _, err := svc.Reserve(ctx, alice, day1, "17:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	times, err := svc.FreeTimes(ctx, day1)
	if err != nil {
		t.Fatalf("free times: %v", err)
	}
	for _, tm := range times {
		if tm == "17:00" {
			t.Fatal("free list must not contain a reserved time")
		}
	}
	if len(times) != 2 {
		t.Fatalf("expected 2 free times, got %v", times)
	}
}

func TestBookingService_Reservations(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	day2 := day1.AddDate(0, 0, 1)
	seedDay(t, store, day1, "16:00", "17:00")
	seedDay(t, store, day2, "16:00")

	for _, pick := range []struct {
		date time.Time
		time string
	}{
		{day2, "16:00"},
		{day1, "17:00"},
	} {
		if _, err := svc.Reserve(ctx, alice, pick.date, pick.time); err != nil {
			t.Fatalf("reserve %s %s: %v", pick.date.Format(model.DateLayout), pick.time, err)
		}
	}
	if _, err := svc.Reserve(ctx, bob, day1, "16:00"); err != nil {
		t.Fatalf("reserve for bob: %v", err)
	}

	slots, err := svc.Reservations(ctx, alice)
	if err != nil {
		t.Fatalf("reservations: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 reservations for alice, got %d", len(slots))
	}
	// Отсортированы по дате, затем по времени
	if slots[0].Time != "17:00" || slots[1].DateKey() != day2.Format(model.DateLayout) {
		t.Fatalf("unexpected order: %s %s, %s %s",
			slots[0].DateKey(), slots[0].Time, slots[1].DateKey(), slots[1].Time)
	}
}

func TestBookingService_Upcoming_IncludesReserved(t *testing.T) {
	svc, store := newTestBookingService(t)
	ctx := context.Background()
	seedDay(t, store, day1, "16:00", "17:00")

	if _, err := svc.Reserve(ctx, alice, day1, "16:00"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	slots, err := svc.Upcoming(ctx, day1, day1)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("operator view must include reserved slots, got %d", len(slots))
	}
}
