package callbacks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Helper functions для всех callback handlers

// answerCallback отвечает на callback query (без alert)
func answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// answerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func answerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// messageFromCallback извлекает сообщение из callback query
func messageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// parseSlotCallback извлекает дату и время из callback data
// Например: "cancel:2025-09-02:16:00" -> (2025-09-02, "16:00")
func parseSlotCallback(data string) (time.Time, string, error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return time.Time{}, "", fmt.Errorf("invalid callback data format")
	}

	date, err := time.Parse(model.DateLayout, parts[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date in callback data: %w", err)
	}

	if _, err := time.Parse("15:04", parts[2]); err != nil {
		return time.Time{}, "", fmt.Errorf("invalid time in callback data: %w", err)
	}

	return date, parts[2], nil
}

// notifyOperator отправляет уведомление оператору
func (h *Handler) notifyOperator(ctx context.Context, b *bot.Bot, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: h.Cfg.OperatorID,
		Text:   text,
	})
	if err != nil {
		h.Logger.Error("Failed to notify operator",
			zap.Int64("operator_id", h.Cfg.OperatorID),
			zap.Error(err),
		)
	}
}

// userLabel подпись пользователя для уведомлений оператора
func userLabel(from models.User) string {
	username := from.Username
	if username == "" {
		username = "-"
	}
	return fmt.Sprintf("%d @%s", from.ID, username)
}
