package callbacks

import (
	"testing"
	"time"
)

func TestParseSlotCallback(t *testing.T) {
	date, slotTime, err := parseSlotCallback("cancel:2025-09-02:16:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !date.Equal(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", date)
	}
	if slotTime != "16:00" {
		t.Fatalf("unexpected time: %q", slotTime)
	}
}

func TestParseSlotCallback_Invalid(t *testing.T) {
	cases := []string{
		"cancel",
		"cancel:2025-09-02",
		"cancel:not-a-date:16:00",
		"cancel:2025-09-02:naptime",
	}

	for _, data := range cases {
		if _, _, err := parseSlotCallback(data); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}
