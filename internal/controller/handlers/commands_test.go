package handlers_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/booking_bot/internal/model"
)

func stringPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestFormatSlotOverview(t *testing.T) {
	day1 := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	slots := []*model.Slot{
		{Date: day1, Time: "16:00"},
		{Date: day1, Time: "17:00", ReservedBy: int64Ptr(100), ReservationRef: stringPtr("ABCD1234")},
		{Date: day2, Time: "16:00"},
	}

	out := handlers.FormatSlotOverview(slots)

	if !strings.HasPrefix(out, "📅 2025-09-01") {
		t.Fatalf("overview must start with the first date, got %q", out)
	}
	if !strings.Contains(out, "✅ 16:00") {
		t.Fatalf("free slot missing: %q", out)
	}
	if !strings.Contains(out, "❌ 17:00 (100)") {
		t.Fatalf("reserved slot with owner missing: %q", out)
	}
	if !strings.Contains(out, "📅 2025-09-02") {
		t.Fatalf("second date missing: %q", out)
	}
}
