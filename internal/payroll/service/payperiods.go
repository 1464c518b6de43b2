package service

import (
	"context"
	"sort"
	"time"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// PayPeriodListing is a pay period classified against today's date.
type PayPeriodListing struct {
	domain.PayPeriod
	Relevance domain.Relevance
}

// PayPeriodQuery filters the pay period listing.
type PayPeriodQuery struct {
	DepartmentID string
	Relevance    string
}

// PayPeriodService lists pay periods for the period picker.
type PayPeriodService struct {
	payPeriods *repository.PayPeriodRepository
	logger     *logger.Logger
	now        func() time.Time
}

// NewPayPeriodService creates a new pay period service
func NewPayPeriodService(payPeriods *repository.PayPeriodRepository, log *logger.Logger) *PayPeriodService {
	return &PayPeriodService{
		payPeriods: payPeriods,
		logger:     log.WithComponent("pay_periods"),
		now:        time.Now,
	}
}

// List returns pay periods, newest first, each classified as current,
// upcoming or past. The department filter is applied client side: the
// store's filtering on link fields is not reliable enough to push down.
func (s *PayPeriodService) List(ctx context.Context, query PayPeriodQuery) ([]PayPeriodListing, error) {
	periods, err := s.payPeriods.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	listings := make([]PayPeriodListing, 0, len(periods))
	for _, period := range periods {
		if query.DepartmentID != "" && period.DepartmentID != query.DepartmentID {
			continue
		}

		relevance := period.RelevanceAt(today)
		if query.Relevance != "" && string(relevance) != query.Relevance {
			continue
		}

		listings = append(listings, PayPeriodListing{PayPeriod: period, Relevance: relevance})
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].EndDate > listings[j].EndDate
	})

	return listings, nil
}
