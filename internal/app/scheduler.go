package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	slotService *service.SlotService
	logger      *zap.Logger
	stopChan    chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(slotService *service.SlotService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		slotService: slotService,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runHorizonTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runHorizonTask следит за тем, чтобы каталог слотов был сгенерирован.
// Генерация идемпотентна: после первого заполнения все последующие
// запуски ничего не делают, поэтому суточный тикер безопасен.
func (s *Scheduler) runHorizonTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.generateHorizon(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateHorizon(ctx)
		case <-s.stopChan:
			s.logger.Info("Horizon task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Horizon task cancelled")
			return
		}
	}
}

func (s *Scheduler) generateHorizon(ctx context.Context) {
	created, err := s.slotService.GenerateHorizon(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to generate slot horizon", zap.Error(err))
		return
	}

	if created > 0 {
		s.logger.Info("Slot horizon generated", zap.Int("slots", created))
	}
}
