package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/payroll"
	"github.com/storepulse/storeops-backend-go/internal/pkg/email"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	records map[string]payroll.Record
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Record)}
}

func (f *fakePayrollRepo) SaveMonth(ctx context.Context, records []payroll.Record) ([]payroll.Record, error) {
	saved := make([]payroll.Record, 0, len(records))
	for _, record := range records {
		key := record.StoreID + "|" + record.EmployeeID + "|" + record.Month
		if existing, ok := f.records[key]; ok {
			record.ID = existing.ID
		}
		f.records[key] = record
		saved = append(saved, record)
	}
	return saved, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return payroll.Record{}, payroll.ErrRecordNotFound
}

func (f *fakePayrollRepo) ListByMonth(ctx context.Context, storeID, month string) ([]payroll.Record, error) {
	var out []payroll.Record
	for _, rec := range f.records {
		if rec.StoreID == storeID && rec.Month == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, storeID, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.StoreID == storeID && emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, storeID string, at time.Time) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeEmailService struct {
	sentTo   []string
	lastData email.PayslipData
	err      error
}

func (f *fakeEmailService) SendPayslip(to string, data email.PayslipData) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	f.lastData = data
	return nil
}

func testRow() payroll.RowInput {
	return payroll.RowInput{
		EmployeeID:        "E-001",
		BaseSalary:        decimal.NewFromInt(15000),
		PositionAllowance: decimal.NewFromInt(1000),
		HazardAllowance:   decimal.NewFromInt(500),
		OvertimePay:       decimal.NewFromFloat(757.50),
		SSODeduction:      decimal.NewFromInt(750),
		TaxDeduction:      decimal.NewFromInt(250),
	}
}

func calculateRequest() payroll.CalculateRequest {
	return payroll.CalculateRequest{
		StoreID: "BR-01",
		Month:   "2025-03",
		Rows:    []payroll.RowInput{testRow()},
	}
}

func newTestPayrollService(repo payroll.PayrollRepository, employees []employee.Employee, mail email.EmailService) payroll.PayrollService {
	if mail == nil {
		mail = &fakeEmailService{}
	}
	return NewPayrollService(repo, &fakeEmployeeRepo{employees: employees}, mail)
}

func TestPayrollService_Calculate(t *testing.T) {
	svc := newTestPayrollService(newFakePayrollRepo(), nil, nil)

	rows, err := svc.Calculate(context.Background(), calculateRequest())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Empty(t, row.ID) // calculate never persists
	assert.True(t, row.GrossAllowances.Equal(decimal.NewFromInt(1500)), "gross = %s", row.GrossAllowances)
	assert.True(t, row.TotalDeductions.Equal(decimal.NewFromInt(1000)), "deductions = %s", row.TotalDeductions)
	// 15000 + 1500 + 757.50 - 1000
	assert.True(t, row.NetPay.Equal(decimal.NewFromFloat(16257.50)), "net = %s", row.NetPay)
}

func TestPayrollService_Calculate_Validation(t *testing.T) {
	svc := newTestPayrollService(newFakePayrollRepo(), nil, nil)

	req := calculateRequest()
	req.Month = "March 2025"
	_, err := svc.Calculate(context.Background(), req)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "month", errs[0].Field)
}

func TestPayrollService_Save_Overwrites(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestPayrollService(repo, nil, nil)

	first, err := svc.Save(context.Background(), calculateRequest())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.NotEmpty(t, first[0].ID)

	// Saving the month again replaces the row instead of duplicating it.
	req := calculateRequest()
	req.Rows[0].SpecialBonus = decimal.NewFromInt(2000)
	second, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	assert.True(t, second[0].NetPay.Equal(decimal.NewFromFloat(18257.50)), "net = %s", second[0].NetPay)
}

func TestPayrollService_ListMonth(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestPayrollService(repo, nil, nil)

	req := calculateRequest()
	req.Rows = append(req.Rows, payroll.RowInput{
		EmployeeID: "E-002",
		BaseSalary: decimal.NewFromInt(12000),
	})
	_, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	rows, err := svc.ListMonth(context.Background(), payroll.ListRequest{StoreID: "BR-01", Month: "2025-03"})

	require.NoError(t, err)
	assert.Len(t, rows, 2)

	other, err := svc.ListMonth(context.Background(), payroll.ListRequest{StoreID: "BR-01", Month: "2025-04"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPayrollService_ListMonth_Validation(t *testing.T) {
	svc := newTestPayrollService(newFakePayrollRepo(), nil, nil)

	_, err := svc.ListMonth(context.Background(), payroll.ListRequest{StoreID: "", Month: "bad"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestPayrollService_EmailPayslip(t *testing.T) {
	repo := newFakePayrollRepo()
	mail := &fakeEmailService{}
	emp := employee.Employee{ID: "E-001", StoreID: "BR-01", Name: "Somsak", Email: "somsak@example.com"}
	svc := newTestPayrollService(repo, []employee.Employee{emp}, mail)

	saved, err := svc.Save(context.Background(), calculateRequest())
	require.NoError(t, err)

	err = svc.EmailPayslip(context.Background(), saved[0].ID)

	require.NoError(t, err)
	require.Len(t, mail.sentTo, 1)
	assert.Equal(t, "somsak@example.com", mail.sentTo[0])
	assert.Equal(t, "Somsak", mail.lastData.EmployeeName)
	assert.Equal(t, "2025-03", mail.lastData.Month)
	assert.Equal(t, "16257.50", mail.lastData.NetPay)
}

func TestPayrollService_EmailPayslip_NoEmail(t *testing.T) {
	repo := newFakePayrollRepo()
	emp := employee.Employee{ID: "E-001", StoreID: "BR-01", Name: "Somsak"}
	svc := newTestPayrollService(repo, []employee.Employee{emp}, nil)

	saved, err := svc.Save(context.Background(), calculateRequest())
	require.NoError(t, err)

	err = svc.EmailPayslip(context.Background(), saved[0].ID)
	assert.Error(t, err)
}

func TestPayrollService_EmailPayslip_UnknownRecord(t *testing.T) {
	svc := newTestPayrollService(newFakePayrollRepo(), nil, nil)

	err := svc.EmailPayslip(context.Background(), "missing-id")
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}
