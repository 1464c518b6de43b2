package service

import (
	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// Attribution is the outcome of punch attribution. UsedFallback is set when
// the link-based filter found nothing and the date-range set was used
// instead.
type Attribution struct {
	Punches      []domain.Punch
	UsedFallback bool
}

// LinkageResolver decides which punches belong to a pay period's time cards.
// The time-card link on punches is unreliable upstream, so the resolver runs
// two paths: the link-based filter is primary, and the date-ranged punch set
// is the fallback. The link-based result is only trusted when it is
// non-empty; reporting zero hours because links were never written would be
// worse than over-attributing.
type LinkageResolver struct {
	logger *logger.Logger
}

// NewLinkageResolver creates a new linkage resolver
func NewLinkageResolver(log *logger.Logger) *LinkageResolver {
	return &LinkageResolver{logger: log.WithComponent("linkage")}
}

// Resolve attributes punches to the pay period's time cards.
func (r *LinkageResolver) Resolve(punches []domain.Punch, cards []domain.TimeCard) Attribution {
	if len(cards) == 0 {
		// No time cards to link against; the date-range fetch is the period
		// boundary.
		return Attribution{Punches: punches}
	}

	linked := r.LinkedOnly(punches, cards)
	if len(linked) > 0 {
		return Attribution{Punches: linked}
	}

	if len(punches) > 0 {
		r.logger.Warn().
			Int("punches", len(punches)).
			Int("time_cards", len(cards)).
			Msg("no punches linked to time cards, falling back to date-range attribution")
	}
	return Attribution{Punches: punches, UsedFallback: true}
}

// LinkedOnly returns the punches whose time-card link is one of the given
// time cards. This is the primary attribution path.
func (r *LinkageResolver) LinkedOnly(punches []domain.Punch, cards []domain.TimeCard) []domain.Punch {
	cardIDs := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		cardIDs[card.ID] = struct{}{}
	}

	var linked []domain.Punch
	for _, punch := range punches {
		if punch.TimeCardID == "" {
			continue
		}
		if _, ok := cardIDs[punch.TimeCardID]; ok {
			linked = append(linked, punch)
		}
	}
	return linked
}

// GroupByEmployee groups attributed punches by employee. Punches with no
// resolvable employee link are skipped; they cannot be attributed but must
// not fail the report. The returned ID slice preserves first-seen order so
// downstream output stays deterministic.
func (r *LinkageResolver) GroupByEmployee(punches []domain.Punch) (map[string][]domain.Punch, []string) {
	grouped := make(map[string][]domain.Punch)
	var order []string

	skipped := 0
	for _, punch := range punches {
		if punch.EmployeeID == "" {
			skipped++
			continue
		}
		if _, seen := grouped[punch.EmployeeID]; !seen {
			order = append(order, punch.EmployeeID)
		}
		grouped[punch.EmployeeID] = append(grouped[punch.EmployeeID], punch)
	}

	if skipped > 0 {
		r.logger.Warn().Int("skipped", skipped).Msg("punches without employee link excluded from aggregation")
	}

	return grouped, order
}
