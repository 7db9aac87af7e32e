package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

// SlotStore единственный источник истины о слотах и их бронях.
// Мутации (Reserve, Release, ForceRelease) обязаны выполнять проверку
// и запись одним атомарным условным обновлением по ключу (дата, время):
// из конкурирующих Reserve на один слот успешен максимум один,
// остальные получают model.ErrSlotTaken.
type SlotStore interface {
	Count(ctx context.Context) (int64, error)
	CreateSlots(ctx context.Context, slots []model.Slot) error
	FreeTimes(ctx context.Context, date time.Time) ([]string, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error)
	ListReservedBy(ctx context.Context, userID int64) ([]*model.Slot, error)
	Reserve(ctx context.Context, date time.Time, slotTime string, userID int64, ref string) error
	Release(ctx context.Context, date time.Time, slotTime string, userID int64) error
	ForceRelease(ctx context.Context, date time.Time, slotTime string) error
}

// UserStore append-only журнал пользователей
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	CountByTelegramID(ctx context.Context, telegramID int64) (int64, error)
}
