package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db       *database.DB
	calendar clock.Calendar
}

func NewScheduleRepository(db *database.DB, calendar clock.Calendar) schedule.ScheduleRepository {
	return &scheduleRepository{db: db, calendar: calendar}
}

const scheduleColumns = `
	id, store_id, employee_id, date, plan_in, plan_out,
	break_start, break_end, plan_in_prev_day, created_at, updated_at
`

func (r *scheduleRepository) scanEntry(row pgx.Row) (schedule.Entry, error) {
	var entry schedule.Entry
	var date time.Time
	err := row.Scan(
		&entry.ID, &entry.StoreID, &entry.EmployeeID, &date,
		&entry.PlanIn, &entry.PlanOut, &entry.BreakStart, &entry.BreakEnd,
		&entry.PlanInPrevDay, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return schedule.Entry{}, err
	}
	// DATE columns scan as midnight UTC; nudge to noon so the business
	// offset cannot shift the calendar day.
	entry.Date = r.calendar.DateOf(date.Add(12 * time.Hour))
	return entry, nil
}

// GetByKey implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByKey(ctx context.Context, storeID, employeeID string, date clock.Date) (*schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_entries
		WHERE store_id = $1 AND employee_id = $2 AND date = $3::date
		LIMIT 1
	`

	entry, err := r.scanEntry(q.QueryRow(ctx, query, storeID, employeeID, date.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule entry: %w", err)
	}

	return &entry, nil
}

// ListRange implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListRange(ctx context.Context, storeID string, start, end clock.Date) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_entries
		WHERE date BETWEEN $1::date AND $2::date
		  AND ($3 = '' OR store_id = $3)
		ORDER BY date, store_id, employee_id
	`

	rows, err := q.Query(ctx, query, start.String(), end.String(), storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []schedule.Entry
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// ListWeek implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListWeek(ctx context.Context, storeID string, monday clock.Date) ([]schedule.Entry, error) {
	return r.ListRange(ctx, storeID, monday, monday.AddDays(6))
}
