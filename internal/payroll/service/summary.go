package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/pkg/errors"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// SummaryEventPublisher is notified after a summary has been computed.
// Publishing is fire-and-forget; implementations must not fail the request.
type SummaryEventPublisher interface {
	SummaryGenerated(ctx context.Context, summary *domain.PayPeriodSummary)
}

// SummaryService aggregates punches into per-employee worked-hours totals for
// one pay period. The whole pipeline is read-only against the record store.
type SummaryService struct {
	payPeriods *repository.PayPeriodRepository
	timeCards  *repository.TimeCardRepository
	punches    *repository.PunchRepository
	resolver   *LinkageResolver
	roster     *RosterCompleter
	durations  *DurationCalculator
	publisher  SummaryEventPublisher
	logger     *logger.Logger
}

// NewSummaryService creates a new summary service. publisher may be nil when
// event publishing is disabled.
func NewSummaryService(
	payPeriods *repository.PayPeriodRepository,
	timeCards *repository.TimeCardRepository,
	punches *repository.PunchRepository,
	resolver *LinkageResolver,
	roster *RosterCompleter,
	durations *DurationCalculator,
	publisher SummaryEventPublisher,
	log *logger.Logger,
) *SummaryService {
	return &SummaryService{
		payPeriods: payPeriods,
		timeCards:  timeCards,
		punches:    punches,
		resolver:   resolver,
		roster:     roster,
		durations:  durations,
		publisher:  publisher,
		logger:     log.WithComponent("summary"),
	}
}

// Summarize computes the worked-hours summary for a pay period. Every
// employee in the period's department appears exactly once, zero punches or
// not; each punch counts at most once toward at most one employee.
func (s *SummaryService) Summarize(ctx context.Context, payPeriodID string) (*domain.PayPeriodSummary, error) {
	log := s.logger.WithPayPeriod(payPeriodID)

	period, err := s.payPeriods.GetByID(ctx, payPeriodID)
	if err != nil {
		return nil, err
	}
	if period.StartDate == "" || period.EndDate == "" {
		return nil, errors.Internal("pay period is missing its date range")
	}

	cards, cardsTruncated, err := s.timeCards.ListByPayPeriod(ctx, period.ID)
	if err != nil {
		return nil, err
	}

	punches, punchesTruncated, err := s.punches.ListByDateRange(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	attribution := s.resolver.Resolve(punches, cards)
	grouped, punchedIDs := s.resolver.GroupByEmployee(attribution.Punches)

	roster, order, err := s.roster.Complete(ctx, punchedIDs, period.DepartmentID)
	if err != nil {
		return nil, err
	}

	cardsByEmployee := make(map[string][]domain.TimeCardSummary)
	for _, card := range cards {
		if card.EmployeeID == "" {
			continue
		}
		cardsByEmployee[card.EmployeeID] = append(cardsByEmployee[card.EmployeeID], domain.TimeCardSummary{
			ID:         card.ID,
			ClientID:   card.ClientID,
			TotalHours: card.TotalHours,
		})
	}

	entries := make([]domain.EmployeeHours, 0, len(order))
	total := decimal.Zero
	for _, id := range order {
		emp := roster[id]
		hours := s.employeeTotal(grouped[id])
		entries = append(entries, domain.EmployeeHours{
			EmployeeID: id,
			Name:       emp.Name,
			Email:      emp.Email,
			TotalHours: hours,
			PunchCount: len(grouped[id]),
			TimeCards:  cardsByEmployee[id],
		})
		total = total.Add(hours)
	}

	// Case-insensitive name order; the stable sort keeps input order on ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	summary := &domain.PayPeriodSummary{
		PayPeriod:          *period,
		EmployeeHours:      entries,
		TotalEmployees:     len(entries),
		TotalHours:         total.Round(2),
		PunchCount:         len(attribution.Punches),
		TimeCardCount:      len(cards),
		PossiblyIncomplete: cardsTruncated || punchesTruncated,
	}

	log.Info().
		Int("employees", summary.TotalEmployees).
		Int("punches", summary.PunchCount).
		Int("time_cards", summary.TimeCardCount).
		Str("total_hours", summary.TotalHours.String()).
		Bool("used_fallback", attribution.UsedFallback).
		Bool("possibly_incomplete", summary.PossiblyIncomplete).
		Msg("pay period summarized")

	if s.publisher != nil {
		s.publisher.SummaryGenerated(ctx, summary)
	}

	return summary, nil
}

// employeeTotal sums one employee's punches, preferring the stored duration
// field over recomputation from timestamps.
func (s *SummaryService) employeeTotal(punches []domain.Punch) decimal.Decimal {
	total := decimal.Zero
	for _, punch := range punches {
		if punch.Duration != nil {
			total = total.Add(*punch.Duration)
			continue
		}
		total = total.Add(s.durations.Hours(punch.PunchIn, punch.PunchOut))
	}
	return total.Round(2)
}
