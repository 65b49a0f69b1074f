package payroll

import "context"

type PayrollRepository interface {
	// SaveMonth creates or overwrites the records for their (store, employee,
	// month) keys. The batch commits or rolls back as one unit.
	SaveMonth(ctx context.Context, records []Record) ([]Record, error)

	// GetByID retrieves a saved record
	GetByID(ctx context.Context, id string) (Record, error)

	// ListByMonth retrieves a store's records for one month
	ListByMonth(ctx context.Context, storeID, month string) ([]Record, error)
}
