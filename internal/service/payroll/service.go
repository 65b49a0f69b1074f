package payroll

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/payroll"
	"github.com/storepulse/storeops-backend-go/internal/pkg/email"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		emailService: emailService,
	}
}

// buildRecord reduces one row of already-aggregated inputs to a Record.
// net = base + allowances + overtime - deductions; no state of its own.
func buildRecord(storeID, month string, row payroll.RowInput) payroll.Record {
	rec := payroll.Record{
		StoreID:           storeID,
		EmployeeID:        row.EmployeeID,
		Month:             month,
		BaseSalary:        row.BaseSalary,
		PositionAllowance: row.PositionAllowance,
		HazardAllowance:   row.HazardAllowance,
		BirthdayBonus:     row.BirthdayBonus,
		HolidayPay:        row.HolidayPay,
		SpecialBonus:      row.SpecialBonus,
		OvertimePay:       row.OvertimePay,
		LateDeduction:     row.LateDeduction,
		SSODeduction:      row.SSODeduction,
		TaxDeduction:      row.TaxDeduction,
		OtherDeduction:    row.OtherDeduction,
	}
	rec.NetPay = rec.BaseSalary.
		Add(rec.GrossAllowances()).
		Add(rec.OvertimePay).
		Sub(rec.TotalDeductions())
	return rec
}

func mapRecordToResponse(rec payroll.Record) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:              rec.ID,
		StoreID:         rec.StoreID,
		EmployeeID:      rec.EmployeeID,
		Month:           rec.Month,
		BaseSalary:      rec.BaseSalary,
		GrossAllowances: rec.GrossAllowances(),
		OvertimePay:     rec.OvertimePay,
		TotalDeductions: rec.TotalDeductions(),
		NetPay:          rec.NetPay,
	}
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) ([]payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(req.Rows))
	for _, row := range req.Rows {
		responses = append(responses, mapRecordToResponse(buildRecord(req.StoreID, req.Month, row)))
	}

	return responses, nil
}

// Save implements payroll.PayrollService. Recalculates server-side and
// overwrites the month's records.
func (s *PayrollServiceImpl) Save(ctx context.Context, req payroll.SaveRequest) ([]payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records := make([]payroll.Record, 0, len(req.Rows))
	for _, row := range req.Rows {
		rec := buildRecord(req.StoreID, req.Month, row)
		rec.ID = uuid.NewString()
		records = append(records, rec)
	}

	saved, err := s.payrollRepo.SaveMonth(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to save payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(saved))
	for _, rec := range saved {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return responses, nil
}

// ListMonth implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMonth(ctx context.Context, req payroll.ListRequest) ([]payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListByMonth(ctx, req.StoreID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return responses, nil
}

// EmailPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) EmailPayslip(ctx context.Context, recordID string) error {
	rec, err := s.payrollRepo.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to get payroll record: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, rec.StoreID, rec.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to look up employee: %w", err)
	}
	if emp.Email == "" {
		return fmt.Errorf("employee %s has no email address", emp.ID)
	}

	data := email.PayslipData{
		EmployeeName:    emp.Name,
		StoreID:         rec.StoreID,
		Month:           rec.Month,
		BaseSalary:      rec.BaseSalary.StringFixed(2),
		GrossAllowances: rec.GrossAllowances().StringFixed(2),
		OvertimePay:     rec.OvertimePay.StringFixed(2),
		TotalDeductions: rec.TotalDeductions().StringFixed(2),
		NetPay:          rec.NetPay.StringFixed(2),
	}

	if err := s.emailService.SendPayslip(emp.Email, data); err != nil {
		return fmt.Errorf("failed to email payslip: %w", err)
	}

	return nil
}
