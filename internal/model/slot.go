package model

import "time"

// DateLayout формат даты слота в callback data и сообщениях
const DateLayout = "2006-01-02"

type Slot struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"` // "16:00"
	ReservedBy     *int64    `json:"reserved_by"`     // указатель - может быть nil
	ReservationRef *string   `json:"reservation_ref"` // короткий код брони, nil для свободных
	CreatedAt      time.Time `json:"created_at"`
}

// IsFree проверяет свободен ли слот
func (s *Slot) IsFree() bool {
	return s.ReservedBy == nil
}

// DateKey возвращает дату слота в формате DateLayout
func (s *Slot) DateKey() string {
	return s.Date.Format(DateLayout)
}
