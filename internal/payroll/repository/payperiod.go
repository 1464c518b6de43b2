package repository

import (
	"context"
	stderrors "errors"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/errors"
)

// PayPeriodRepository reads pay periods from the record store.
type PayPeriodRepository struct {
	client *store.Client
	table  string
}

// NewPayPeriodRepository creates a new pay period repository
func NewPayPeriodRepository(client *store.Client, table string) *PayPeriodRepository {
	return &PayPeriodRepository{client: client, table: table}
}

// GetByID fetches a single pay period. A missing period is a distinct
// not-found error, not a generic fault.
func (r *PayPeriodRepository) GetByID(ctx context.Context, id string) (*domain.PayPeriod, error) {
	record, err := r.client.GetRecord(ctx, r.table, id)
	if err != nil {
		if stderrors.Is(err, store.ErrRecordNotFound) {
			return nil, errors.NotFound("pay period")
		}
		return nil, errors.Upstream(err, "failed to fetch pay period")
	}

	period := mapPayPeriod(*record)
	return &period, nil
}

// List fetches all pay periods in the base.
func (r *PayPeriodRepository) List(ctx context.Context) ([]domain.PayPeriod, error) {
	result, err := r.client.FetchAll(ctx, r.table, nil)
	if err != nil {
		return nil, errors.Upstream(err, "failed to list pay periods")
	}

	periods := make([]domain.PayPeriod, 0, len(result.Records))
	for _, record := range result.Records {
		periods = append(periods, mapPayPeriod(record))
	}
	return periods, nil
}

func mapPayPeriod(record store.Record) domain.PayPeriod {
	name, _ := record.Text("name", "Name")
	start, _ := record.Text("start_date")
	end, _ := record.Text("end_date")
	payout, _ := record.Text("payout_date")
	departmentID, _ := record.LinkID("department_id", "Department")

	return domain.PayPeriod{
		ID:           record.ID,
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		PayoutDate:   payout,
		DepartmentID: departmentID,
	}
}
