package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	slotStore SlotStore
	logger    *zap.Logger
}

func NewBookingService(slotStore SlotStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		slotStore: slotStore,
		logger:    logger,
	}
}

// FreeTimes возвращает свободные времена на дату.
// Пустой срез - нормальный исход ("всё занято или дата вне горизонта"), не ошибка.
func (s *BookingService) FreeTimes(ctx context.Context, date time.Time) ([]string, error) {
	return s.slotStore.FreeTimes(ctx, date)
}

// Upcoming возвращает все слоты диапазона для обзора оператора
func (s *BookingService) Upcoming(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	return s.slotStore.ListRange(ctx, from, to)
}

// Reserve занимает слот для пользователя и возвращает короткий код брони.
// Проигрыш гонки приходит как model.ErrSlotTaken и никогда не маскируется
// под успех: пользователь должен явно увидеть конфликт.
func (s *BookingService) Reserve(ctx context.Context, userID int64, date time.Time, slotTime string) (string, error) {
	ref := newReservationRef()

	err := s.slotStore.Reserve(ctx, date, slotTime, userID, ref)
	if err != nil {
		if errors.Is(err, model.ErrSlotTaken) || errors.Is(err, model.ErrSlotNotFound) {
			return "", err
		}
		return "", fmt.Errorf("reserve slot: %w", err)
	}

	s.logger.Info("Slot reserved",
		zap.String("date", date.Format(model.DateLayout)),
		zap.String("time", slotTime),
		zap.Int64("user_id", userID),
		zap.String("ref", ref),
	)

	return ref, nil
}

// Release снимает бронь пользователя. Попытка снять чужую или
// несуществующую бронь - ожидаемый no-op исход, не исключение.
func (s *BookingService) Release(ctx context.Context, userID int64, date time.Time, slotTime string) error {
	err := s.slotStore.Release(ctx, date, slotTime, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotOwner) || errors.Is(err, model.ErrSlotNotFound) {
			return err
		}
		return fmt.Errorf("release slot: %w", err)
	}

	s.logger.Info("Slot released",
		zap.String("date", date.Format(model.DateLayout)),
		zap.String("time", slotTime),
		zap.Int64("user_id", userID),
	)

	return nil
}

// ReleaseByOperator снимает бронь независимо от владельца
func (s *BookingService) ReleaseByOperator(ctx context.Context, date time.Time, slotTime string) error {
	err := s.slotStore.ForceRelease(ctx, date, slotTime)
	if err != nil {
		if errors.Is(err, model.ErrNotOwner) || errors.Is(err, model.ErrSlotNotFound) {
			return err
		}
		return fmt.Errorf("force release slot: %w", err)
	}

	s.logger.Info("Slot released by operator",
		zap.String("date", date.Format(model.DateLayout)),
		zap.String("time", slotTime),
	)

	return nil
}

// Reservations возвращает активные брони пользователя, по дате и времени
func (s *BookingService) Reservations(ctx context.Context, userID int64) ([]*model.Slot, error) {
	return s.slotStore.ListReservedBy(ctx, userID)
}

// newReservationRef короткий код брони для подтверждений и уведомлений
func newReservationRef() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
