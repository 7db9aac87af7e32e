package model

import "time"

// User запись в append-only журнале пользователей.
// Журнал нужен только для уведомлений оператора и не участвует в логике брони.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
}
