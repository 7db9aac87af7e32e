package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	// OperatorID Telegram ID оператора: получает уведомления,
	// может смотреть все слоты и снимать чужие брони
	OperatorID int64

	// Настройки генерации горизонта слотов
	HorizonDays     int
	HorizonWeekdays map[time.Weekday]bool
	LessonTimes     []string

	// Настройки отображения. Фильтр дней для выбора даты настраивается
	// отдельно от фильтра генерации - они не обязаны совпадать.
	PickerDays         int
	PickerWeekdays     map[time.Weekday]bool
	UpcomingWindowDays int

	MigrationsPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	operatorID, err := strconv.ParseInt(os.Getenv("OPERATOR_ID"), 10, 64)
	if err != nil || operatorID == 0 {
		return nil, fmt.Errorf("OPERATOR_ID is required and must be a telegram id")
	}
	cfg.OperatorID = operatorID

	cfg.HorizonDays, err = intEnv("HORIZON_DAYS", 365)
	if err != nil {
		return nil, err
	}
	cfg.PickerDays, err = intEnv("PICKER_DAYS", 7)
	if err != nil {
		return nil, err
	}
	cfg.UpcomingWindowDays, err = intEnv("UPCOMING_WINDOW_DAYS", 10)
	if err != nil {
		return nil, err
	}

	cfg.LessonTimes, err = ParseTimes(envOrDefault("LESSON_TIMES", "16:00,17:00,18:00,19:00"))
	if err != nil {
		return nil, fmt.Errorf("LESSON_TIMES: %w", err)
	}

	cfg.HorizonWeekdays, err = ParseWeekdays(envOrDefault("HORIZON_WEEKDAYS", "1,2,3,4,5"))
	if err != nil {
		return nil, fmt.Errorf("HORIZON_WEEKDAYS: %w", err)
	}
	cfg.PickerWeekdays, err = ParseWeekdays(envOrDefault("PICKER_WEEKDAYS", "1,2,3,4,5"))
	if err != nil {
		return nil, fmt.Errorf("PICKER_WEEKDAYS: %w", err)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// ParseTimes разбирает список времён вида "16:00,17:00"
func ParseTimes(raw string) ([]string, error) {
	var times []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := time.Parse("15:04", part); err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", part, err)
		}
		times = append(times, part)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("empty time list")
	}
	return times, nil
}

// ParseWeekdays разбирает список дней недели вида "1,2,3,4,5" (1=Пн ... 7=Вс)
func ParseWeekdays(raw string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid weekday %q (want 1-7, 1=Monday)", part)
		}
		days[time.Weekday(n%7)] = true
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("empty weekday list")
	}
	return days, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, raw)
	}
	return n, nil
}
