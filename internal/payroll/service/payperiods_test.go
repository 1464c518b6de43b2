package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/internal/payroll/service"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/logger"
	"github.com/paygrid/payroll-backend/pkg/testutil"
)

func newPayPeriodService(t *testing.T, fake *testutil.FakeRecordStore) *service.PayPeriodService {
	t.Helper()
	client := store.NewClient(fake.Config(), logger.Nop())
	repo := repository.NewPayPeriodRepository(client, testutil.TablePayPeriods)
	return service.NewPayPeriodService(repo, logger.Nop())
}

// Periods far in the past and far in the future keep the classification
// independent of the wall clock.
func seedPayPeriods(fake *testutil.FakeRecordStore) {
	fake.Seed(testutil.TablePayPeriods,
		store.Record{ID: "past1", Fields: map[string]any{
			"name":          "Jan 2000",
			"start_date":    "2000-01-01",
			"end_date":      "2000-01-14",
			"department_id": []any{"d1"},
		}},
		store.Record{ID: "past2", Fields: map[string]any{
			"name":          "Feb 2000",
			"start_date":    "2000-02-01",
			"end_date":      "2000-02-14",
			"department_id": []any{"d2"},
		}},
		store.Record{ID: "future1", Fields: map[string]any{
			"name":          "Jan 2099",
			"start_date":    "2099-01-01",
			"end_date":      "2099-01-14",
			"department_id": []any{"d1"},
		}},
		store.Record{ID: "span1", Fields: map[string]any{
			"name":          "The long century",
			"start_date":    "2000-03-01",
			"end_date":      "2099-12-31",
			"department_id": []any{"d1"},
		}},
	)
}

func TestPayPeriodService_List(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedPayPeriods(fake)

	svc := newPayPeriodService(t, fake)

	listings, err := svc.List(context.Background(), service.PayPeriodQuery{})
	require.NoError(t, err)
	require.Len(t, listings, 4)

	// Newest end date first
	assert.Equal(t, "span1", listings[0].ID)
	assert.Equal(t, "future1", listings[1].ID)
	assert.Equal(t, "past2", listings[2].ID)
	assert.Equal(t, "past1", listings[3].ID)

	assert.Equal(t, domain.RelevanceCurrent, listings[0].Relevance)
	assert.Equal(t, domain.RelevanceUpcoming, listings[1].Relevance)
	assert.Equal(t, domain.RelevancePast, listings[2].Relevance)
	assert.Equal(t, domain.RelevancePast, listings[3].Relevance)
}

func TestPayPeriodService_List_DepartmentFilter(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedPayPeriods(fake)

	svc := newPayPeriodService(t, fake)

	listings, err := svc.List(context.Background(), service.PayPeriodQuery{DepartmentID: "d2"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "past2", listings[0].ID)
}

func TestPayPeriodService_List_RelevanceFilter(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedPayPeriods(fake)

	svc := newPayPeriodService(t, fake)

	listings, err := svc.List(context.Background(), service.PayPeriodQuery{Relevance: "past"})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "past2", listings[0].ID)
	assert.Equal(t, "past1", listings[1].ID)
}

func TestPayPeriodService_List_Empty(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	svc := newPayPeriodService(t, fake)

	listings, err := svc.List(context.Background(), service.PayPeriodQuery{})
	require.NoError(t, err)
	assert.Empty(t, listings)
}
