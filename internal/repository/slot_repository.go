package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Count возвращает общее число слотов в каталоге
func (r *SlotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM slots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}

// CreateSlots вставляет пачку слотов одной транзакцией.
// ON CONFLICT DO NOTHING вместе с UNIQUE (slot_date, slot_time) делает
// генерацию безопасной при одновременном старте нескольких процессов.
func (r *SlotRepository) CreateSlots(ctx context.Context, slots []model.Slot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO slots (slot_date, slot_time)
		VALUES ($1, $2)
		ON CONFLICT (slot_date, slot_time) DO NOTHING
	`

	for _, slot := range slots {
		if _, err := tx.Exec(ctx, query, slot.Date, slot.Time); err != nil {
			return fmt.Errorf("insert slot %s %s: %w", slot.DateKey(), slot.Time, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// FreeTimes возвращает свободные времена на дату, по возрастанию.
// Пустой результат - валидный ответ (всё занято или дата вне горизонта).
func (r *SlotRepository) FreeTimes(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT slot_time
		FROM slots
		WHERE slot_date = $1 AND reserved_by IS NULL
		ORDER BY slot_time
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get free times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan time: %w", err)
		}
		times = append(times, t)
	}

	return times, rows.Err()
}

// ListRange возвращает все слоты (свободные и занятые) в диапазоне дат включительно
func (r *SlotRepository) ListRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, slot_date, slot_time, reserved_by, reservation_ref, created_at
		FROM slots
		WHERE slot_date >= $1 AND slot_date <= $2
		ORDER BY slot_date, slot_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots in range: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListReservedBy возвращает брони пользователя, по дате и времени
func (r *SlotRepository) ListReservedBy(ctx context.Context, userID int64) ([]*model.Slot, error) {
	query := `
		SELECT id, slot_date, slot_time, reserved_by, reservation_ref, created_at
		FROM slots
		WHERE reserved_by = $1
		ORDER BY slot_date, slot_time
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reserved slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Reserve атомарно занимает слот, только если он свободен.
// Проверка "свободен" и запись происходят одним условным UPDATE,
// поэтому из конкурирующих вызовов на одну пару (дата, время)
// успешным будет ровно один.
func (r *SlotRepository) Reserve(ctx context.Context, date time.Time, slotTime string, userID int64, ref string) error {
	query := `
		UPDATE slots
		SET reserved_by = $1, reservation_ref = $2
		WHERE slot_date = $3 AND slot_time = $4 AND reserved_by IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, userID, ref, date, slotTime)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Либо слота нет, либо его успели занять - различаем
		exists, err := r.slotExists(ctx, date, slotTime)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrSlotNotFound
		}
		return model.ErrSlotTaken
	}

	return nil
}

// Release атомарно освобождает слот, только если им владеет userID
func (r *SlotRepository) Release(ctx context.Context, date time.Time, slotTime string, userID int64) error {
	query := `
		UPDATE slots
		SET reserved_by = NULL, reservation_ref = NULL
		WHERE slot_date = $1 AND slot_time = $2 AND reserved_by = $3
	`

	tag, err := r.pool.Exec(ctx, query, date, slotTime, userID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.slotExists(ctx, date, slotTime)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrSlotNotFound
		}
		return model.ErrNotOwner
	}

	return nil
}

// ForceRelease освобождает слот независимо от владельца (для оператора)
func (r *SlotRepository) ForceRelease(ctx context.Context, date time.Time, slotTime string) error {
	query := `
		UPDATE slots
		SET reserved_by = NULL, reservation_ref = NULL
		WHERE slot_date = $1 AND slot_time = $2 AND reserved_by IS NOT NULL
	`

	tag, err := r.pool.Exec(ctx, query, date, slotTime)
	if err != nil {
		return fmt.Errorf("force release slot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.slotExists(ctx, date, slotTime)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrSlotNotFound
		}
		return model.ErrNotOwner // слот и так свободен, снимать нечего
	}

	return nil
}

func (r *SlotRepository) slotExists(ctx context.Context, date time.Time, slotTime string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM slots WHERE slot_date = $1 AND slot_time = $2)`,
		date, slotTime,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slot exists: %w", err)
	}
	return exists, nil
}

func scanSlots(rows pgx.Rows) ([]*model.Slot, error) {
	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.Date,
			&slot.Time,
			&slot.ReservedBy,
			&slot.ReservationRef,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}
