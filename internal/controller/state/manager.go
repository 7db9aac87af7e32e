package state

import (
	"sync"
)

// UserState шаг диалога бронирования
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Линейный флоу бронирования: дата -> время -> терминальное состояние.
	// Любой ввод вне очереди сбрасывает диалог в StateNone без побочных эффектов.
	StateChoosingDate UserState = "choosing_date"
	StateChoosingTime UserState = "choosing_time"
)

// KeyChosenDate ключ выбранной даты в данных диалога
const KeyChosenDate = "chosen_date"

// Manager хранит состояния диалогов пользователей.
// Каждый пользователь проходит свой независимый экземпляр флоу,
// поэтому состояние ключуется по telegram id, а не хранится глобально.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*userData // telegramID -> userData
}

type userData struct {
	state UserState
	data  map[string]string
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*userData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, exists := sm.states[telegramID]; exists {
		return ud.state
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &userData{
			state: state,
			data:  make(map[string]string),
		}
	} else {
		sm.states[telegramID].state = state
	}
}

// GetData получает временные данные диалога
func (sm *Manager) GetData(telegramID int64, key string) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, exists := sm.states[telegramID]; exists {
		value, ok := ud.data[key]
		return value, ok
	}
	return "", false
}

// SetData устанавливает временные данные диалога
func (sm *Manager) SetData(telegramID int64, key, value string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &userData{
			state: StateNone,
			data:  make(map[string]string),
		}
	}
	sm.states[telegramID].data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
