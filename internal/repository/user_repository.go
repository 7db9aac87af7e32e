package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create добавляет запись в журнал пользователей.
// Журнал append-only: записи никогда не обновляются и не удаляются,
// координация со слотами не нужна.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// CountByTelegramID возвращает число записей журнала для telegram id.
// Нужен, чтобы уведомлять оператора только о первом контакте.
func (r *UserRepository) CountByTelegramID(ctx context.Context, telegramID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by telegram id: %w", err)
	}
	return count, nil
}
