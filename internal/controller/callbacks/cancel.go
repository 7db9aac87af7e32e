package callbacks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/booking_bot/internal/controller/screens"
	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Cancellation Flow Handlers
// ========================
// Одношаговый флоу вне state machine бронирования: список броней ->
// выбор -> явное подтверждение -> снятие. Подтверждение существует,
// чтобы одно случайное нажатие не уничтожило бронь.

// HandleCancelList показывает активные брони пользователя
func (h *Handler) HandleCancelList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	telegramID := callback.From.ID
	h.StateManager.ClearState(telegramID)

	slots, err := h.BookingService.Reservations(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to list reservations",
			zap.Int64("user_id", telegramID),
			zap.Error(err),
		)
		answerCallbackAlert(ctx, b, callback.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	if len(slots) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        "ℹ️ Non risultano prenotazioni attive.",
			ReplyMarkup: screens.MainMenuOnly(),
		})
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	kb := keyboard.NewBuilder()
	for _, slot := range slots {
		label := fmt.Sprintf("%s %s", slot.DateKey(), slot.Time)
		kb.Row(keyboard.Button(label, fmt.Sprintf("%s%s:%s", CancelPick, slot.DateKey(), slot.Time)))
	}
	kb.Row(keyboard.Button("📜 Menu principale", screens.CallbackMainMenu))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "❌ Seleziona la prenotazione da cancellare:",
		ReplyMarkup: kb.Build(),
	})
	answerCallback(ctx, b, callback.ID, "")
}

// HandleCancelPick запрашивает явное подтверждение отмены
func (h *Handler) HandleCancelPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	date, slotTime, err := parseSlotCallback(callback.Data)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Formato dati non valido")
		return
	}

	dateKey := date.Format(model.DateLayout)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Conferma", fmt.Sprintf("%s%s:%s", CancelConfirm, dateKey, slotTime))).
		Row(keyboard.Button("🔙 Annulla", screens.CallbackCancelList)).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("⚠️ Sei sicuro di voler cancellare la prenotazione per il %s alle %s?", dateKey, slotTime),
		ReplyMarkup: kb,
	})
	answerCallback(ctx, b, callback.ID, "")
}

// HandleCancelConfirm снимает бронь после подтверждения
func (h *Handler) HandleCancelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	date, slotTime, err := parseSlotCallback(callback.Data)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Formato dati non valido")
		return
	}

	telegramID := callback.From.ID
	dateKey := date.Format(model.DateLayout)

	// Оператор может снимать чужие брони, пользователь - только свои
	if telegramID == h.Cfg.OperatorID {
		err = h.BookingService.ReleaseByOperator(ctx, date, slotTime)
	} else {
		err = h.BookingService.Release(ctx, telegramID, date, slotTime)
	}

	switch {
	case errors.Is(err, model.ErrNotOwner), errors.Is(err, model.ErrSlotNotFound):
		// Чужая или уже снятая бронь: состояние не тронуто
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        fmt.Sprintf("ℹ️ Nessuna prenotazione da cancellare per il %s alle %s.", dateKey, slotTime),
			ReplyMarkup: screens.MainMenuOnly(),
		})
		answerCallback(ctx, b, callback.ID, "")
		return
	case err != nil:
		h.Logger.Error("Failed to release slot",
			zap.String("date", dateKey),
			zap.String("time", slotTime),
			zap.Int64("user_id", telegramID),
			zap.Error(err),
		)
		answerCallbackAlert(ctx, b, callback.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("✅ Prenotazione cancellata per il %s alle %s.", dateKey, slotTime),
		ReplyMarkup: screens.MainMenuOnly(),
	})
	answerCallback(ctx, b, callback.ID, "✅ Cancellata")

	h.notifyOperator(ctx, b, fmt.Sprintf(
		"❌ Prenotazione cancellata:\nData: %s\nOra: %s\nUtente: %s",
		dateKey, slotTime, userLabel(callback.From),
	))
}
