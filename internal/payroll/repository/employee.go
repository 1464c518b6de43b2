package repository

import (
	"context"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/errors"
)

// EmployeeRepository reads employees from the record store.
type EmployeeRepository struct {
	client *store.Client
	table  string
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(client *store.Client, table string) *EmployeeRepository {
	return &EmployeeRepository{client: client, table: table}
}

// ListByIDs fetches the employees with the given record IDs. An empty ID set
// short-circuits to an empty result without a store round trip.
func (r *EmployeeRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, store.Filter{"id": store.AnyOf(ids...)})
}

// ListByDepartment fetches every employee linked to a department.
func (r *EmployeeRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Employee, error) {
	return r.list(ctx, store.Filter{"department_id": store.AnyOf(departmentID)})
}

func (r *EmployeeRepository) list(ctx context.Context, filter store.Filter) ([]domain.Employee, error) {
	result, err := r.client.FetchAll(ctx, r.table, filter)
	if err != nil {
		return nil, errors.Upstream(err, "failed to fetch employees")
	}

	employees := make([]domain.Employee, 0, len(result.Records))
	for _, record := range result.Records {
		employees = append(employees, mapEmployee(record))
	}
	return employees, nil
}

func mapEmployee(record store.Record) domain.Employee {
	email, _ := record.Text("email", "Email")
	departmentID, _ := record.LinkID("department_id", "Department")

	// Display name falls back through name, then email, then "Unknown".
	name, ok := record.Text("Name", "name")
	if !ok {
		name = email
	}
	if name == "" {
		name = "Unknown"
	}

	return domain.Employee{
		ID:           record.ID,
		Name:         name,
		Email:        email,
		DepartmentID: departmentID,
	}
}
