package screens

import (
	"github.com/Freeeeeet/booking_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot/models"
)

// Callback data главного меню. Остальные паттерны живут в callbacks.
const (
	CallbackMainMenu   = "main_menu"
	CallbackSubjects   = "subjects"
	CallbackInfo       = "info"
	CallbackBook       = "book"
	CallbackCancelList = "cancel_list"
)

// Welcome текст приветствия и полное меню
func Welcome() (string, *models.InlineKeyboardMarkup) {
	text := "👋 Benvenuto!\n\n" +
		"🎵 Sono Matteo Corazza, insegnante di musica con esperienza " +
		"nell'insegnamento di chitarra e pianoforte.\n\n" +
		"💡 Offro lezioni e coaching musicali personalizzati in:\n" +
		"• Chitarra (acustica ed elettrica)\n" +
		"• Pianoforte (classico e moderno)\n" +
		"• Teoria musicale, armonia, ear training\n\n" +
		"🎉 Prima lezione di prova gratuita, e sconti speciali se porti un amico.\n\n" +
		"📲 Scegli qui sotto come iniziare:"

	return text, FullMenu()
}

// Subjects экран материй
func Subjects() (string, *models.InlineKeyboardMarkup) {
	text := "📚 Corsi e competenze offerte:\n\n" +
		"✅ Chitarra\n" +
		"  - Tecnica di base e avanzata (plettro, fingerstyle)\n" +
		"  - Ritmica, accompagnamento e arpeggi\n" +
		"  - Improvvisazione e linguaggio (rock, pop, blues, jazz)\n\n" +
		"✅ Pianoforte\n" +
		"  - Impostazione, tecnica e indipendenza delle mani\n" +
		"  - Accompagnamento moderno e voicings\n" +
		"  - Repertorio classico e contemporaneo\n\n" +
		"✅ Teoria & Musicianship\n" +
		"  - Teoria musicale di base e avanzata\n" +
		"  - Armonia funzionale e moderna\n" +
		"  - Ear training e solfeggio ritmico/melodico\n\n" +
		"📈 Metodo personalizzato: percorso su misura per ogni livello"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("ℹ️ Info e tariffe", CallbackInfo)).
		Row(keyboard.Button("🗓 Prenota lezione", CallbackBook)).
		Row(keyboard.Button("📜 Menu principale", CallbackMainMenu)).
		Build()

	return text, kb
}

// Info экран тарифов
func Info() (string, *models.InlineKeyboardMarkup) {
	text := "ℹ️ Info & Tariffe:\n\n" +
		"💼 Tariffa standard: 50 CHF/ora\n\n" +
		"🎁 Pacchetti risparmio:\n" +
		"  - 5 ore: 225 CHF (45 CHF/ora)\n" +
		"  - 10 ore: 400 CHF (40 CHF/ora)\n\n" +
		"📅 Lezioni in presenza a Mendrisio oppure online via Zoom/Teams.\n\n" +
		"🔄 Possibilità di riprogrammare la lezione con almeno 24h di preavviso.\n\n" +
		"💳 Pagamento: contanti, TWINT, bonifico bancario.\n\n" +
		"🎉 La prima lezione di prova è gratuita, senza impegno."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗓 Prenota lezione", CallbackBook)).
		Row(keyboard.Button("📜 Menu principale", CallbackMainMenu)).
		Build()

	return text, kb
}

// FullMenu полная клавиатура со всеми опциями
func FullMenu() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📚 Materie disponibili", CallbackSubjects)).
		Row(keyboard.Button("ℹ️ Info e tariffe", CallbackInfo)).
		Row(keyboard.Button("🗓 Prenota lezione", CallbackBook)).
		Row(keyboard.Button("❌ Cancella prenotazione", CallbackCancelList)).
		Build()
}

// MainMenuOnly клавиатура с единственной кнопкой главного меню
func MainMenuOnly() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("📜 Menu principale", CallbackMainMenu)).
		Build()
}
