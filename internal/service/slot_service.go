package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"go.uber.org/zap"
)

// HorizonConfig параметры генерации каталога слотов
type HorizonConfig struct {
	Days     int
	Weekdays map[time.Weekday]bool
	Times    []string
}

type SlotService struct {
	slotStore SlotStore
	horizon   HorizonConfig
	logger    *zap.Logger
}

func NewSlotService(slotStore SlotStore, horizon HorizonConfig, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotStore: slotStore,
		horizon:   horizon,
		logger:    logger,
	}
}

// GenerateHorizon заполняет каталог слотов на горизонт вперёд.
// Идемпотентна: если хоть один слот уже существует, ничего не делает.
// Безопасна на каждом старте процесса. Возвращает число созданных слотов.
func (s *SlotService) GenerateHorizon(ctx context.Context, start time.Time) (int, error) {
	count, err := s.slotStore.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}

	if count > 0 {
		s.logger.Debug("Slot catalogue already populated", zap.Int64("slots", count))
		return 0, nil
	}

	slots := buildHorizon(start, s.horizon)

	if err := s.slotStore.CreateSlots(ctx, slots); err != nil {
		return 0, fmt.Errorf("create slots: %w", err)
	}

	s.logger.Info("Slot catalogue generated",
		zap.Int("slots", len(slots)),
		zap.Int("horizon_days", s.horizon.Days),
	)

	return len(slots), nil
}

// buildHorizon строит один слот на каждую пару (подходящий день × время)
func buildHorizon(start time.Time, horizon HorizonConfig) []model.Slot {
	var slots []model.Slot

	day := truncateToDay(start)
	for i := 0; i < horizon.Days; i++ {
		if horizon.Weekdays[day.Weekday()] {
			for _, t := range horizon.Times {
				slots = append(slots, model.Slot{Date: day, Time: t})
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// QualifyingDates возвращает следующие count дат, проходящих фильтр
// дней недели, начиная с from включительно
func QualifyingDates(from time.Time, count int, weekdays map[time.Weekday]bool) []time.Time {
	var dates []time.Time

	day := truncateToDay(from)
	for len(dates) < count {
		if weekdays[day.Weekday()] {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, 1)
	}

	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
