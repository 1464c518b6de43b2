package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/internal/payroll/service"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/errors"
	"github.com/paygrid/payroll-backend/pkg/logger"
	"github.com/paygrid/payroll-backend/pkg/testutil"
)

func newSummaryService(t *testing.T, fake *testutil.FakeRecordStore) *service.SummaryService {
	t.Helper()

	client := store.NewClient(fake.Config(), logger.Nop())
	log := logger.Nop()

	return service.NewSummaryService(
		repository.NewPayPeriodRepository(client, testutil.TablePayPeriods),
		repository.NewTimeCardRepository(client, testutil.TableTimeCards),
		repository.NewPunchRepository(client, testutil.TablePunches),
		service.NewLinkageResolver(log),
		service.NewRosterCompleter(repository.NewEmployeeRepository(client, testutil.TableEmployees), log),
		service.NewDurationCalculator(log),
		nil,
		log,
	)
}

// seedNovemberPeriod sets up the reference scenario: a two-week period with a
// three-person department. E1 worked two shifts on one day, E2 has a single
// open punch, E3 never punched.
func seedNovemberPeriod(fake *testutil.FakeRecordStore) {
	fake.Seed(testutil.TablePayPeriods, store.Record{
		ID: "pp1",
		Fields: map[string]any{
			"name":          "November 1-14",
			"start_date":    "2025-11-01",
			"end_date":      "2025-11-14",
			"department_id": []any{"d1"},
		},
	})
	fake.Seed(testutil.TableEmployees,
		store.Record{ID: "e1", Fields: map[string]any{"Name": "Alice", "email": "alice@example.com", "department_id": "d1"}},
		store.Record{ID: "e2", Fields: map[string]any{"Name": "Bob", "department_id": "d1"}},
		store.Record{ID: "e3", Fields: map[string]any{"Name": "Carol", "department_id": "d1"}},
	)
	fake.Seed(testutil.TableTimeCards,
		store.Record{ID: "tc1", Fields: map[string]any{"pay_period_id": []any{"pp1"}, "employee_id": []any{"e1"}, "client_id": []any{"c1"}}},
		store.Record{ID: "tc2", Fields: map[string]any{"pay_period_id": []any{"pp1"}, "employee_id": []any{"e2"}}},
	)
	fake.Seed(testutil.TablePunches,
		store.Record{ID: "p1", Fields: map[string]any{
			"employee_id":    []any{"e1"}, // singleton-list link shape
			"time_card_id":   []any{"tc1"},
			"punch_in_time":  "2025-11-03T08:00:00Z",
			"punch_out_time": "2025-11-03T12:00:00Z",
		}},
		store.Record{ID: "p2", Fields: map[string]any{
			"employee_id":    "e1",
			"time_card_id":   "tc1",
			"punch_in_time":  "2025-11-03T13:00:00Z",
			"punch_out_time": "2025-11-03T17:30:00Z",
		}},
		store.Record{ID: "p3", Fields: map[string]any{
			"employee_id":   "e2",
			"time_card_id":  "tc2",
			"punch_in_time": "2025-11-05T09:00:00Z",
			// no punch-out: still open
		}},
	)
}

func TestSummaryService_Summarize(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedNovemberPeriod(fake)

	svc := newSummaryService(t, fake)

	summary, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)

	assert.Equal(t, "November 1-14", summary.PayPeriod.Name)
	assert.Equal(t, 3, summary.TotalEmployees)
	assert.Equal(t, "8.5", summary.TotalHours.String())
	assert.Equal(t, 3, summary.PunchCount)
	assert.Equal(t, 2, summary.TimeCardCount)
	assert.False(t, summary.PossiblyIncomplete)

	require.Len(t, summary.EmployeeHours, 3)

	alice := summary.EmployeeHours[0]
	assert.Equal(t, "e1", alice.EmployeeID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, "8.5", alice.TotalHours.String())
	assert.Equal(t, 2, alice.PunchCount)
	require.Len(t, alice.TimeCards, 1)
	assert.Equal(t, "tc1", alice.TimeCards[0].ID)
	assert.Equal(t, "c1", alice.TimeCards[0].ClientID)

	bob := summary.EmployeeHours[1]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, "0", bob.TotalHours.String())
	assert.Equal(t, 1, bob.PunchCount)

	carol := summary.EmployeeHours[2]
	assert.Equal(t, "Carol", carol.Name)
	assert.Equal(t, "0", carol.TotalHours.String())
	assert.Equal(t, 0, carol.PunchCount)
}

func TestSummaryService_Summarize_Idempotent(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedNovemberPeriod(fake)

	svc := newSummaryService(t, fake)

	first, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)
	second, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummaryService_Summarize_FallbackWhenNoPunchLinks(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	fake.Seed(testutil.TablePayPeriods, store.Record{
		ID: "pp1",
		Fields: map[string]any{
			"start_date":    "2025-11-01",
			"end_date":      "2025-11-14",
			"department_id": []any{"d1"},
		},
	})
	fake.Seed(testutil.TableEmployees,
		store.Record{ID: "e1", Fields: map[string]any{"Name": "Alice", "department_id": "d1"}},
	)
	// Time cards exist, but no punch carries a matching link
	fake.Seed(testutil.TableTimeCards,
		store.Record{ID: "tc1", Fields: map[string]any{"pay_period_id": []any{"pp1"}, "employee_id": []any{"e1"}}},
	)
	fake.Seed(testutil.TablePunches,
		store.Record{ID: "p1", Fields: map[string]any{
			"employee_id":    "e1",
			"punch_in_time":  "2025-11-03T08:00:00Z",
			"punch_out_time": "2025-11-03T12:00:00Z",
		}},
	)

	svc := newSummaryService(t, fake)

	summary, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)

	// The date-ranged punches are still counted, not silently zeroed
	assert.Equal(t, "4", summary.TotalHours.String())
	assert.Equal(t, 1, summary.PunchCount)
}

func TestSummaryService_Summarize_PrefersStoredDuration(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	fake.Seed(testutil.TablePayPeriods, store.Record{
		ID:     "pp1",
		Fields: map[string]any{"start_date": "2025-11-01", "end_date": "2025-11-14"},
	})
	fake.Seed(testutil.TableEmployees,
		store.Record{ID: "e1", Fields: map[string]any{"Name": "Alice"}},
	)
	fake.Seed(testutil.TablePunches,
		store.Record{ID: "p1", Fields: map[string]any{
			"employee_id": "e1",
			// timestamps say 4h; the precomputed field wins
			"punch_in_time":  "2025-11-03T08:00:00Z",
			"punch_out_time": "2025-11-03T12:00:00Z",
			"duration":       5.0,
		}},
	)

	svc := newSummaryService(t, fake)

	summary, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)
	assert.Equal(t, "5", summary.TotalHours.String())
}

func TestSummaryService_Summarize_SortsByNameCaseInsensitive(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	fake.Seed(testutil.TablePayPeriods, store.Record{
		ID:     "pp1",
		Fields: map[string]any{"start_date": "2025-11-01", "end_date": "2025-11-14", "department_id": "d1"},
	})
	fake.Seed(testutil.TableEmployees,
		store.Record{ID: "e1", Fields: map[string]any{"Name": "charlie", "department_id": "d1"}},
		store.Record{ID: "e2", Fields: map[string]any{"Name": "Bea", "department_id": "d1"}},
		store.Record{ID: "e3", Fields: map[string]any{"Name": "anna", "department_id": "d1"}},
	)

	svc := newSummaryService(t, fake)

	summary, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)

	names := make([]string, 0, len(summary.EmployeeHours))
	for _, eh := range summary.EmployeeHours {
		names = append(names, eh.Name)
	}
	assert.Equal(t, []string{"anna", "Bea", "charlie"}, names)
}

func TestSummaryService_Summarize_NotFound(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	svc := newSummaryService(t, fake)

	_, err := svc.Summarize(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSummaryService_Summarize_UpstreamFault(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	seedNovemberPeriod(fake)
	fake.FailTable(testutil.TablePunches, 500)

	svc := newSummaryService(t, fake)

	_, err := svc.Summarize(context.Background(), "pp1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}

func TestSummaryService_Summarize_TruncationIsSignaled(t *testing.T) {
	fake := testutil.NewFakeRecordStore(t)
	fake.Seed(testutil.TablePayPeriods, store.Record{
		ID:     "pp1",
		Fields: map[string]any{"start_date": "2025-11-01", "end_date": "2025-11-14"},
	})
	for i := 0; i < 30; i++ {
		fake.Seed(testutil.TablePunches, store.Record{
			ID: fmt.Sprintf("p%03d", i),
			Fields: map[string]any{
				"employee_id":    "e1",
				"punch_in_time":  "2025-11-03T08:00:00Z",
				"punch_out_time": "2025-11-03T09:00:00Z",
			},
		})
	}

	cfg := fake.Config()
	cfg.PageSize = 10
	cfg.MaxRecords = 20
	client := store.NewClient(cfg, logger.Nop())
	log := logger.Nop()
	svc := service.NewSummaryService(
		repository.NewPayPeriodRepository(client, testutil.TablePayPeriods),
		repository.NewTimeCardRepository(client, testutil.TableTimeCards),
		repository.NewPunchRepository(client, testutil.TablePunches),
		service.NewLinkageResolver(log),
		service.NewRosterCompleter(repository.NewEmployeeRepository(client, testutil.TableEmployees), log),
		service.NewDurationCalculator(log),
		nil,
		log,
	)

	summary, err := svc.Summarize(context.Background(), "pp1")
	require.NoError(t, err)
	assert.True(t, summary.PossiblyIncomplete)
}
