package events

import (
	"context"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/pkg/logger"
	"github.com/paygrid/payroll-backend/pkg/messaging"
)

// PayrollEventPublisher publishes payroll-related events
type PayrollEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewPayrollEventPublisher creates a new payroll event publisher
func NewPayrollEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*PayrollEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangePayrollEvents, "payroll-service", log)
	if err != nil {
		return nil, err
	}

	return &PayrollEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// SummaryGenerated publishes a summary generated event. Failures are logged
// only; the summary itself has already been computed and must still be
// served.
func (p *PayrollEventPublisher) SummaryGenerated(ctx context.Context, summary *domain.PayPeriodSummary) {
	data := messaging.SummaryGeneratedEvent{
		PayPeriodID:        summary.PayPeriod.ID,
		TotalEmployees:     summary.TotalEmployees,
		TotalHours:         summary.TotalHours.InexactFloat64(),
		PossiblyIncomplete: summary.PossiblyIncomplete,
	}

	if err := p.publisher.Publish(ctx, messaging.EventSummaryGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("pay_period_id", summary.PayPeriod.ID).Msg("failed to publish summary generated event")
	}
}
