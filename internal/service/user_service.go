package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userStore UserStore
	logger    *zap.Logger
}

func NewUserService(userStore UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

// Register дописывает контакт в журнал пользователей.
// Возвращает true, если это первый контакт с этим telegram id -
// только тогда оператору уходит уведомление о новом пользователе.
func (s *UserService) Register(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, bool, error) {
	seen, err := s.userStore.CountByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, fmt.Errorf("check known user: %w", err)
	}

	user := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("log user: %w", err)
	}

	first := seen == 0
	if first {
		s.logger.Info("New user registered",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)
	}

	return user, first, nil
}
