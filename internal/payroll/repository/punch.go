package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/errors"
)

// PunchRepository reads punches from the record store.
type PunchRepository struct {
	client *store.Client
	table  string
}

// NewPunchRepository creates a new punch repository
func NewPunchRepository(client *store.Client, table string) *PunchRepository {
	return &PunchRepository{client: client, table: table}
}

// ListByDateRange fetches every punch whose punch-in falls inside the given
// period boundary dates. Timestamp boundaries are reduced to their date part;
// the store's range filter rejects mixed date/datetime comparisons. The
// second return value reports ceiling truncation.
func (r *PunchRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Punch, bool, error) {
	filter := store.Filter{
		"punch_in_time": store.Between(domain.DateOnly(startDate), domain.DateOnly(endDate)),
	}

	result, err := r.client.FetchAll(ctx, r.table, filter)
	if err != nil {
		return nil, false, errors.Upstream(err, "failed to fetch punches")
	}

	punches := make([]domain.Punch, 0, len(result.Records))
	for _, record := range result.Records {
		punches = append(punches, mapPunch(record))
	}
	return punches, result.Truncated, nil
}

func mapPunch(record store.Record) domain.Punch {
	employeeID, _ := record.LinkID("employee_id", "Employee")
	timeCardID, _ := record.LinkID("time_card_id", "Time Card")
	punchIn, _ := record.Text("punch_in_time", "Punch In Time")
	punchOut, _ := record.Text("punch_out_time", "Punch Out Time")

	punch := domain.Punch{
		ID:         record.ID,
		EmployeeID: employeeID,
		TimeCardID: timeCardID,
		PunchIn:    punchIn,
		PunchOut:   punchOut,
	}

	if hours, ok := record.Number("duration"); ok {
		d := decimal.NewFromFloat(hours)
		punch.Duration = &d
	}

	return punch
}
