package callbacks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/booking_bot/internal/controller/screens"
	"github.com/Freeeeeet/booking_bot/internal/controller/state"
	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/Freeeeeet/booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Flow Handlers
// ========================
// Линейный флоу: выбор даты -> выбор времени -> подтверждение.
// Состояние диалога живёт в state.Manager по telegram id.

// HandleStartBooking показывает выбор даты и переводит диалог в ChoosingDate
func (h *Handler) HandleStartBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	telegramID := callback.From.ID
	h.StateManager.ClearState(telegramID)
	h.StateManager.SetState(telegramID, state.StateChoosingDate)

	dates := service.QualifyingDates(time.Now(), h.Cfg.PickerDays, h.Cfg.PickerWeekdays)

	var buttons []models.InlineKeyboardButton
	for _, d := range dates {
		buttons = append(buttons, keyboard.Button(
			d.Format("Mon 02/01"),
			PickDate+d.Format(model.DateLayout),
		))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 3).
		Row(keyboard.Button("❌ Cancella prenotazione", screens.CallbackCancelList)).
		Row(keyboard.Button("📜 Menu principale", screens.CallbackMainMenu)).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "🗓 Scegli una data disponibile:",
		ReplyMarkup: kb,
	})
	answerCallback(ctx, b, callback.ID, "")
}

// HandleSelectDate показывает свободные времена выбранной даты
func (h *Handler) HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	telegramID := callback.From.ID

	// Выбор даты вне очереди сбрасывает диалог без побочных эффектов
	if h.StateManager.GetState(telegramID) != state.StateChoosingDate {
		h.resetDialog(ctx, b, callback, msg.Chat.ID)
		return
	}

	date, err := time.Parse(model.DateLayout, callback.Data[len(PickDate):])
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Formato data non valido")
		return
	}

	times, err := h.BookingService.FreeTimes(ctx, date)
	if err != nil {
		h.Logger.Error("Failed to list free times",
			zap.String("date", date.Format(model.DateLayout)),
			zap.Error(err),
		)
		answerCallbackAlert(ctx, b, callback.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	dateKey := date.Format(model.DateLayout)

	// Пустой список - валидный исход: на эту дату всё занято
	if len(times) == 0 {
		h.StateManager.ClearState(telegramID)
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        fmt.Sprintf("⛔ Nessuno slot disponibile per il %s.", dateKey),
			ReplyMarkup: screens.MainMenuOnly(),
		})
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	h.StateManager.SetState(telegramID, state.StateChoosingTime)
	h.StateManager.SetData(telegramID, state.KeyChosenDate, dateKey)

	kb := keyboard.NewBuilder()
	for _, t := range times {
		kb.Row(keyboard.Button(t, PickTime+t))
	}
	kb.Row(keyboard.Button("❌ Cancella prenotazione", screens.CallbackCancelList)).
		Row(keyboard.Button("📜 Menu principale", screens.CallbackMainMenu))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("🕒 Scegli un orario per il %s:", dateKey),
		ReplyMarkup: kb.Build(),
	})
	answerCallback(ctx, b, callback.ID, "")
}

// HandleSelectTime бронирует выбранный слот
func (h *Handler) HandleSelectTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Errore")
		return
	}

	telegramID := callback.From.ID

	dateKey, ok := h.StateManager.GetData(telegramID, state.KeyChosenDate)
	if h.StateManager.GetState(telegramID) != state.StateChoosingTime || !ok {
		h.resetDialog(ctx, b, callback, msg.Chat.ID)
		return
	}

	date, err := time.Parse(model.DateLayout, dateKey)
	if err != nil {
		h.resetDialog(ctx, b, callback, msg.Chat.ID)
		return
	}

	slotTime := callback.Data[len(PickTime):]

	ref, err := h.BookingService.Reserve(ctx, telegramID, date, slotTime)

	// Флоу терминален: диалог завершается и при успехе, и при конфликте
	h.StateManager.ClearState(telegramID)

	switch {
	case errors.Is(err, model.ErrSlotTaken):
		// Проигрыш гонки сообщается явно, а не выдаётся за успех
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        fmt.Sprintf("⚠️ L'orario %s del %s è appena stato prenotato da qualcun altro. Scegli un altro slot.", slotTime, dateKey),
			ReplyMarkup: screens.MainMenuOnly(),
		})
		answerCallback(ctx, b, callback.ID, "")
		return
	case errors.Is(err, model.ErrSlotNotFound):
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        "⛔ Questo slot non esiste più.",
			ReplyMarkup: screens.MainMenuOnly(),
		})
		answerCallback(ctx, b, callback.ID, "")
		return
	case err != nil:
		h.Logger.Error("Failed to reserve slot",
			zap.String("date", dateKey),
			zap.String("time", slotTime),
			zap.Int64("user_id", telegramID),
			zap.Error(err),
		)
		answerCallbackAlert(ctx, b, callback.ID, "❌ Si è verificato un errore. Riprova più tardi.")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text: fmt.Sprintf(
			"✅ Prenotato per %s alle %s (rif. %s). Ti confermerò appena possibile!",
			dateKey, slotTime, ref,
		),
		ReplyMarkup: screens.MainMenuOnly(),
	})
	answerCallback(ctx, b, callback.ID, "✅ Prenotazione creata")

	h.notifyOperator(ctx, b, fmt.Sprintf(
		"🗓 Nuova prenotazione (rif. %s):\nData: %s\nOra: %s\nUtente: %s",
		ref, dateKey, slotTime, userLabel(callback.From),
	))
}

// resetDialog сбрасывает диалог в исходное состояние и показывает меню
func (h *Handler) resetDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, chatID int64) {
	h.StateManager.ClearState(callback.From.ID)

	text, kb := screens.Welcome()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	answerCallback(ctx, b, callback.ID, "⚠️ Sessione scaduta, ricomincia dal menu")
}
