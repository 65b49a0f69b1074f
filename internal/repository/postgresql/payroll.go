package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/payroll"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, store_id, employee_id, month,
	base_salary, position_allowance, hazard_allowance, birthday_bonus,
	holiday_pay, special_bonus, overtime_pay,
	late_deduction, sso_deduction, tax_deduction, other_deduction,
	net_pay, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.StoreID, &rec.EmployeeID, &rec.Month,
		&rec.BaseSalary, &rec.PositionAllowance, &rec.HazardAllowance,
		&rec.BirthdayBonus, &rec.HolidayPay, &rec.SpecialBonus, &rec.OvertimePay,
		&rec.LateDeduction, &rec.SSODeduction, &rec.TaxDeduction, &rec.OtherDeduction,
		&rec.NetPay, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// SaveMonth implements payroll.PayrollRepository. A partial failure rolls
// back the whole batch so a month is never half-saved.
func (r *payrollRepository) SaveMonth(ctx context.Context, records []payroll.Record) ([]payroll.Record, error) {
	saved := make([]payroll.Record, 0, len(records))

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		for _, rec := range records {
			upserted, err := r.upsert(txCtx, rec)
			if err != nil {
				return err
			}
			saved = append(saved, upserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// upsert overwrites the record for (store, employee, month) on conflict.
func (r *payrollRepository) upsert(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, store_id, employee_id, month,
			base_salary, position_allowance, hazard_allowance, birthday_bonus,
			holiday_pay, special_bonus, overtime_pay,
			late_deduction, sso_deduction, tax_deduction, other_deduction,
			net_pay
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (store_id, employee_id, month) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			position_allowance = EXCLUDED.position_allowance,
			hazard_allowance = EXCLUDED.hazard_allowance,
			birthday_bonus = EXCLUDED.birthday_bonus,
			holiday_pay = EXCLUDED.holiday_pay,
			special_bonus = EXCLUDED.special_bonus,
			overtime_pay = EXCLUDED.overtime_pay,
			late_deduction = EXCLUDED.late_deduction,
			sso_deduction = EXCLUDED.sso_deduction,
			tax_deduction = EXCLUDED.tax_deduction,
			other_deduction = EXCLUDED.other_deduction,
			net_pay = EXCLUDED.net_pay,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.StoreID, record.EmployeeID, record.Month,
		record.BaseSalary, record.PositionAllowance, record.HazardAllowance,
		record.BirthdayBonus, record.HolidayPay, record.SpecialBonus, record.OvertimePay,
		record.LateDeduction, record.SSODeduction, record.TaxDeduction, record.OtherDeduction,
		record.NetPay,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// ListByMonth implements payroll.PayrollRepository.
func (r *payrollRepository) ListByMonth(ctx context.Context, storeID, month string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE store_id = $1 AND month = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, storeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
