package config_test

import (
	"testing"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DB_DSN", "postgres://localhost:5432/bot")
	t.Setenv("OPERATOR_ID", "42")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.OperatorID != 42 {
		t.Fatalf("unexpected operator id: %d", cfg.OperatorID)
	}
	if cfg.HorizonDays != 365 {
		t.Fatalf("unexpected horizon: %d", cfg.HorizonDays)
	}
	if cfg.PickerDays != 7 || cfg.UpcomingWindowDays != 10 {
		t.Fatalf("unexpected picker/upcoming: %d/%d", cfg.PickerDays, cfg.UpcomingWindowDays)
	}
	if len(cfg.LessonTimes) != 4 || cfg.LessonTimes[0] != "16:00" {
		t.Fatalf("unexpected lesson times: %v", cfg.LessonTimes)
	}
	if cfg.HorizonWeekdays[time.Saturday] || !cfg.HorizonWeekdays[time.Monday] {
		t.Fatalf("unexpected horizon weekdays: %v", cfg.HorizonWeekdays)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DB_DSN", "")
	t.Setenv("OPERATOR_ID", "42")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for missing DB_DSN")
	}
}

func TestLoad_IndependentWeekdayFilters(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HORIZON_WEEKDAYS", "1,2,3,4,5")
	t.Setenv("PICKER_WEEKDAYS", "1,3,5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Фильтры генерации и выбора даты настраиваются независимо
	if !cfg.HorizonWeekdays[time.Tuesday] {
		t.Fatal("tuesday must qualify for horizon")
	}
	if cfg.PickerWeekdays[time.Tuesday] {
		t.Fatal("tuesday must not qualify for picker")
	}
}

func TestParseTimes(t *testing.T) {
	times, err := config.ParseTimes("16:00, 17:00,18:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(times) != 3 || times[2] != "18:30" {
		t.Fatalf("unexpected times: %v", times)
	}
}

func TestParseTimes_Invalid(t *testing.T) {
	if _, err := config.ParseTimes("25:00"); err == nil {
		t.Fatal("expected error for invalid time")
	}
	if _, err := config.ParseTimes(""); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := config.ParseWeekdays("1,5,7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !days[time.Monday] || !days[time.Friday] || !days[time.Sunday] {
		t.Fatalf("unexpected weekdays: %v", days)
	}
	if days[time.Tuesday] {
		t.Fatal("tuesday must not qualify")
	}
}

func TestParseWeekdays_Invalid(t *testing.T) {
	if _, err := config.ParseWeekdays("0,1"); err == nil {
		t.Fatal("expected error for weekday 0")
	}
	if _, err := config.ParseWeekdays("lun"); err == nil {
		t.Fatal("expected error for non-numeric weekday")
	}
}
