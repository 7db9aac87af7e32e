package handlers

import (
	"github.com/Freeeeeet/booking_bot/internal/controller/state"
	"github.com/Freeeeeet/booking_bot/internal/service"
	"go.uber.org/zap"
)

// Config настройки командных обработчиков
type Config struct {
	OperatorID         int64
	UpcomingWindowDays int
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	bookingService *service.BookingService
	stateManager   *state.Manager
	logger         *zap.Logger
	cfg            Config
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
	cfg Config,
) *Handlers {
	return &Handlers{
		userService:    userService,
		bookingService: bookingService,
		stateManager:   stateManager,
		logger:         logger,
		cfg:            cfg,
	}
}
