package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/controller/screens"
	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From

	// Дописываем контакт в журнал пользователей
	_, first, err := h.userService.Register(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		h.logger.Error("Failed to register user",
			zap.Int64("telegram_id", from.ID),
			zap.Error(err),
		)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	// Оператору - только о первом контакте
	if first {
		username := from.Username
		if username == "" {
			username = "-"
		}
		h.notifyOperator(ctx, b, fmt.Sprintf("📥 Nuovo utente: %d @%s", from.ID, username))
	}

	// Сбрасываем возможный незавершённый диалог
	h.stateManager.ClearState(from.ID)

	text, kb := screens.Welcome()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: kb,
	})
}

// HandleAdminSlots показывает оператору слоты ближайшего окна,
// свободные и занятые, сгруппированные по дате
func (h *Handlers) HandleAdminSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.From.ID != h.cfg.OperatorID {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        "⛔ Solo l'amministratore può usare questo comando.",
			ReplyMarkup: screens.MainMenuOnly(),
		})
		return
	}

	from := time.Now()
	to := from.AddDate(0, 0, h.cfg.UpcomingWindowDays)

	slots, err := h.bookingService.Upcoming(ctx, from, to)
	if err != nil {
		h.logger.Error("Failed to list upcoming slots", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	if len(slots) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        "ℹ️ Nessuno slot trovato.",
			ReplyMarkup: screens.MainMenuOnly(),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        FormatSlotOverview(slots),
		ReplyMarkup: screens.MainMenuOnly(),
	})
}

// FormatSlotOverview группирует слоты по дате с маркером занятости
func FormatSlotOverview(slots []*model.Slot) string {
	var sb strings.Builder

	currentDate := ""
	for _, slot := range slots {
		if slot.DateKey() != currentDate {
			currentDate = slot.DateKey()
			fmt.Fprintf(&sb, "\n📅 %s\n", currentDate)
		}

		if slot.IsFree() {
			fmt.Fprintf(&sb, "✅ %s\n", slot.Time)
		} else {
			fmt.Fprintf(&sb, "❌ %s (%d)\n", slot.Time, *slot.ReservedBy)
		}
	}

	return strings.TrimPrefix(sb.String(), "\n")
}

// notifyOperator отправляет уведомление оператору
func (h *Handlers) notifyOperator(ctx context.Context, b *bot.Bot, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: h.cfg.OperatorID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to notify operator",
			zap.Int64("operator_id", h.cfg.OperatorID),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
