package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/errors"
)

// TimeCardRepository reads time cards from the record store.
type TimeCardRepository struct {
	client *store.Client
	table  string
}

// NewTimeCardRepository creates a new time card repository
func NewTimeCardRepository(client *store.Client, table string) *TimeCardRepository {
	return &TimeCardRepository{client: client, table: table}
}

// ListByPayPeriod fetches the time cards linked to a pay period. The second
// return value reports whether pagination was truncated by the record
// ceiling.
func (r *TimeCardRepository) ListByPayPeriod(ctx context.Context, payPeriodID string) ([]domain.TimeCard, bool, error) {
	filter := store.Filter{"pay_period_id": store.AnyOf(payPeriodID)}

	result, err := r.client.FetchAll(ctx, r.table, filter)
	if err != nil {
		return nil, false, errors.Upstream(err, "failed to fetch time cards")
	}

	cards := make([]domain.TimeCard, 0, len(result.Records))
	for _, record := range result.Records {
		cards = append(cards, mapTimeCard(record))
	}
	return cards, result.Truncated, nil
}

func mapTimeCard(record store.Record) domain.TimeCard {
	employeeID, _ := record.LinkID("employee_id", "Employee")
	clientID, _ := record.LinkID("client_id", "Client")

	card := domain.TimeCard{
		ID:         record.ID,
		EmployeeID: employeeID,
		ClientID:   clientID,
	}

	if hours, ok := record.Number("total_hours", "Total Hours"); ok {
		d := decimal.NewFromFloat(hours)
		card.TotalHours = &d
	}

	return card
}
