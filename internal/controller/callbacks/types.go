package callbacks

import (
	"time"

	"github.com/Freeeeeet/booking_bot/internal/controller/state"
	"github.com/Freeeeeet/booking_bot/internal/service"
	"go.uber.org/zap"
)

// Config настройки отображения флоу бронирования
type Config struct {
	// OperatorID получает уведомления о бронях и отменах
	OperatorID int64

	// Сколько дат и по какому фильтру показывать при выборе даты.
	// Фильтр настраивается отдельно от фильтра генерации горизонта.
	PickerDays     int
	PickerWeekdays map[time.Weekday]bool
}

// Handler содержит зависимости всех callback handlers
type Handler struct {
	BookingService *service.BookingService
	StateManager   *state.Manager
	Logger         *zap.Logger
	Cfg            Config
}

// NewHandler создаёт callback handler
func NewHandler(
	bookingService *service.BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
	cfg Config,
) *Handler {
	return &Handler{
		BookingService: bookingService,
		StateManager:   stateManager,
		Logger:         logger,
		Cfg:            cfg,
	}
}
