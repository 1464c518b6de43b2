package service

import (
	"context"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// RosterCompleter expands the punch-derived employee set to the full
// department roster, so employees with zero punches still appear in the
// summary.
type RosterCompleter struct {
	employees *repository.EmployeeRepository
	logger    *logger.Logger
}

// NewRosterCompleter creates a new roster completer
func NewRosterCompleter(employees *repository.EmployeeRepository, log *logger.Logger) *RosterCompleter {
	return &RosterCompleter{
		employees: employees,
		logger:    log.WithComponent("roster"),
	}
}

// Complete resolves identities for every employee that must appear in the
// summary: first the employees behind the punched IDs, then the whole
// department. The merge never overwrites a punch-derived entry with a
// department one. The returned ID slice is the deterministic output order:
// punched employees in first-seen order, then department additions in store
// order.
func (c *RosterCompleter) Complete(ctx context.Context, punchedIDs []string, departmentID string) (map[string]domain.Employee, []string, error) {
	roster := make(map[string]domain.Employee, len(punchedIDs))
	order := make([]string, 0, len(punchedIDs))

	byID, err := c.employees.ListByIDs(ctx, punchedIDs)
	if err != nil {
		return nil, nil, err
	}
	fetched := make(map[string]domain.Employee, len(byID))
	for _, emp := range byID {
		fetched[emp.ID] = emp
	}

	for _, id := range punchedIDs {
		if _, seen := roster[id]; seen {
			continue
		}
		emp, ok := fetched[id]
		if !ok {
			// The punch references an employee record the store no longer
			// returns. Keep the row so the hours are not silently dropped.
			emp = domain.Employee{ID: id, Name: "Unknown"}
		}
		roster[id] = emp
		order = append(order, id)
	}

	if departmentID == "" {
		c.logger.Info().Msg("pay period has no department, roster limited to employees with punches")
		return roster, order, nil
	}

	department, err := c.employees.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, nil, err
	}
	for _, emp := range department {
		if _, seen := roster[emp.ID]; seen {
			continue
		}
		roster[emp.ID] = emp
		order = append(order, emp.ID)
	}

	return roster, order, nil
}
