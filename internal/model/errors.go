package model

import "errors"

// Ожидаемые исходы операций над слотами. Никогда не фатальны:
// контроллер превращает их в сообщения пользователю.
var (
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotTaken    = errors.New("slot already reserved")
	ErrNotOwner     = errors.New("reservation belongs to another user")
)
