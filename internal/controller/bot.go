package controller

import (
	"context"

	"github.com/Freeeeeet/booking_bot/internal/config"
	"github.com/Freeeeeet/booking_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/booking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/booking_bot/internal/controller/state"
	"github.com/Freeeeeet/booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	bookingService *service.BookingService,
	cfg *config.Config,
	logger *zap.Logger,
) *BotController {
	// Состояния диалогов: каждый пользователь идёт по своему экземпляру флоу
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		userService,
		bookingService,
		stateManager,
		logger,
		handlers.Config{
			OperatorID:         cfg.OperatorID,
			UpcomingWindowDays: cfg.UpcomingWindowDays,
		},
	)

	callbackHandler := callbacks.NewHandler(
		bookingService,
		stateManager,
		logger,
		callbacks.Config{
			OperatorID:     cfg.OperatorID,
			PickerDays:     cfg.PickerDays,
			PickerWeekdays: cfg.PickerWeekdays,
		},
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/adminslots", bot.MatchTypeExact, c.handlers.HandleAdminSlots)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Menu principale"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
