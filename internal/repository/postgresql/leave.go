package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/leave"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db       *database.DB
	calendar clock.Calendar
}

func NewLeaveRequestRepository(db *database.DB, calendar clock.Calendar) leave.RequestRepository {
	return &leaveRequestRepository{db: db, calendar: calendar}
}

const leaveColumns = `
	id, store_id, employee_id, date, leave_type, half_day, status,
	reason, certificate_ref, created_at, updated_at
`

func (r *leaveRequestRepository) scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	var date time.Time
	err := row.Scan(
		&req.ID, &req.StoreID, &req.EmployeeID, &date, &req.Type,
		&req.HalfDay, &req.Status, &req.Reason, &req.CertificateRef,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	req.Date = r.calendar.DateOf(date.Add(12 * time.Hour))
	return req, nil
}

// ListApprovedByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListApprovedByEmployee(ctx context.Context, storeID, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE store_id = $1 AND employee_id = $2 AND status = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, storeID, employeeID, leave.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListApprovedRange implements leave.RequestRepository.
func (r *leaveRequestRepository) ListApprovedRange(ctx context.Context, storeID string, start, end clock.Date) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE store_id = $1
		  AND status = $2
		  AND date BETWEEN $3::date AND $4::date
		ORDER BY date, employee_id
	`

	rows, err := q.Query(ctx, query, storeID, leave.StatusApproved, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *leaveRequestRepository) collect(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
