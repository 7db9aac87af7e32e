package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/booking_bot/internal/controller/screens"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

const (
	// Флоу бронирования
	PickDate = "date:" // date:2025-09-02
	PickTime = "time:" // time:16:00

	// Флоу отмены
	CancelPick    = "cancel:"         // cancel:2025-09-02:16:00
	CancelConfirm = "confirm_cancel:" // confirm_cancel:2025-09-02:16:00
)

// HandleCallbackQuery маршрутизирует нажатия inline кнопок
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	data := callback.Data

	h.Logger.Debug("Callback received",
		zap.Int64("telegram_id", callback.From.ID),
		zap.String("data", data),
	)

	switch {
	// ===== Navigation =====
	case data == screens.CallbackMainMenu:
		h.handleScreen(ctx, b, callback, screens.Welcome)
	case data == screens.CallbackSubjects:
		h.handleScreen(ctx, b, callback, screens.Subjects)
	case data == screens.CallbackInfo:
		h.handleScreen(ctx, b, callback, screens.Info)

	// ===== Booking Flow =====
	case data == screens.CallbackBook:
		h.HandleStartBooking(ctx, b, callback)
	case strings.HasPrefix(data, PickDate):
		h.HandleSelectDate(ctx, b, callback)
	case strings.HasPrefix(data, PickTime):
		h.HandleSelectTime(ctx, b, callback)

	// ===== Cancellation Flow =====
	case data == screens.CallbackCancelList:
		h.HandleCancelList(ctx, b, callback)
	case strings.HasPrefix(data, CancelConfirm):
		h.HandleCancelConfirm(ctx, b, callback)
	case strings.HasPrefix(data, CancelPick):
		h.HandleCancelPick(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "")
	}
}

// handleScreen показывает статический экран и сбрасывает активный диалог
func (h *Handler) handleScreen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, screen func() (string, *models.InlineKeyboardMarkup)) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	h.StateManager.ClearState(callback.From.ID)

	text, kb := screen()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
	answerCallback(ctx, b, callback.ID, "")
}
