package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db       *database.DB
	calendar clock.Calendar
}

func NewAttendanceRepository(db *database.DB, calendar clock.Calendar) attendance.EventRepository {
	return &attendanceRepository{db: db, calendar: calendar}
}

const eventColumns = `
	id, store_id, employee_id, employee_name, event_type, occurred_at, event_date,
	latitude, longitude, geofence_distance_m, geofence_compliant,
	late_minutes, early_minutes, overtime_minutes, break_minutes,
	status, approval_state, created_at
`

func (r *attendanceRepository) scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	var date time.Time
	err := row.Scan(
		&ev.ID, &ev.StoreID, &ev.EmployeeID, &ev.EmployeeName, &ev.Type,
		&ev.OccurredAt, &date,
		&ev.Latitude, &ev.Longitude, &ev.GeofenceDistanceM, &ev.GeofenceCompliant,
		&ev.LateMinutes, &ev.EarlyMinutes, &ev.OvertimeMinutes, &ev.BreakMinutes,
		&ev.Status, &ev.ApprovalState, &ev.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, err
	}
	ev.Date = r.calendar.DateOf(date.Add(12 * time.Hour))
	return ev, nil
}

// InsertOnce implements attendance.EventRepository. The once-per-day rule is
// enforced by the unique index on (store_id, employee_id, event_type,
// event_date); the conditional insert closes the read-then-write race.
func (r *attendanceRepository) InsertOnce(ctx context.Context, event attendance.Event) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, store_id, employee_id, employee_name, event_type, occurred_at, event_date,
			latitude, longitude, geofence_distance_m, geofence_compliant,
			late_minutes, early_minutes, overtime_minutes, break_minutes,
			status, approval_state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (store_id, employee_id, event_type, event_date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		event.ID,
		event.StoreID,
		event.EmployeeID,
		event.EmployeeName,
		event.Type,
		event.OccurredAt,
		event.Date.String(),
		event.Latitude,
		event.Longitude,
		event.GeofenceDistanceM,
		event.GeofenceCompliant,
		event.LateMinutes,
		event.EarlyMinutes,
		event.OvertimeMinutes,
		event.BreakMinutes,
		event.Status,
		event.ApprovalState,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByEmployeeAndDate implements attendance.EventRepository.
func (r *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, storeID, employeeID string, date clock.Date) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE store_id = $1 AND employee_id = $2 AND event_date = $3::date
		ORDER BY occurred_at
	`

	rows, err := q.Query(ctx, query, storeID, employeeID, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// LatestBreakStart implements attendance.EventRepository. Lookup is by
// employee only so a break started at another store still closes.
func (r *attendanceRepository) LatestBreakStart(ctx context.Context, employeeID string, date clock.Date) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND event_date = $2::date AND event_type = $3
		ORDER BY occurred_at DESC
		LIMIT 1
	`

	ev, err := r.scanEvent(q.QueryRow(ctx, query, employeeID, date.String(), attendance.EventBreakStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest break start: %w", err)
	}

	return &ev, nil
}

// ListRange implements attendance.EventRepository.
func (r *attendanceRepository) ListRange(ctx context.Context, storeID string, start, end clock.Date) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE event_date BETWEEN $1::date AND $2::date
		  AND ($3 = '' OR store_id = $3)
		ORDER BY event_date, store_id, employee_id, occurred_at
	`

	rows, err := q.Query(ctx, query, start.String(), end.String(), storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *attendanceRepository) collect(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		ev, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
