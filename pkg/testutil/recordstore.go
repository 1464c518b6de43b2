package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/config"
)

// Conventional table IDs used by the fake store.
const (
	TablePayPeriods  = "tblPayPeriods"
	TableTimeCards   = "tblTimeCards"
	TablePunches     = "tblPunches"
	TableEmployees   = "tblEmployees"
	TableDepartments = "tblDepartments"
)

// FakeRecordStore is an in-memory lookalike of the Fillout tables API backed
// by httptest. The real store client runs against it unchanged.
//
// Usage:
//
//	fake := testutil.NewFakeRecordStore(t)
//	fake.Seed(testutil.TablePunches, store.Record{ID: "p1", Fields: ...})
//	client := store.NewClient(fake.Config(), logger.Nop())
type FakeRecordStore struct {
	Server *httptest.Server

	mu        sync.Mutex
	tables    map[string][]store.Record
	failures  map[string]int
	listCalls int
}

// NewFakeRecordStore starts a fake record store; it is shut down via t.Cleanup.
func NewFakeRecordStore(t *testing.T) *FakeRecordStore {
	t.Helper()

	fake := &FakeRecordStore{
		tables:   make(map[string][]store.Record),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Post("/{base}/tables/{table}/records/list", fake.handleList)
	r.Get("/{base}/tables/{table}/records/{id}", fake.handleGet)

	fake.Server = httptest.NewServer(r)
	t.Cleanup(fake.Server.Close)

	return fake
}

// Seed appends records to a table.
func (f *FakeRecordStore) Seed(table string, records ...store.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], records...)
}

// FailTable makes every request against a table return the given status.
func (f *FakeRecordStore) FailTable(table string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[table] = status
}

// ListCalls reports how many page requests have been served.
func (f *FakeRecordStore) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// Config returns a record store configuration pointing at the fake.
func (f *FakeRecordStore) Config() *config.FilloutConfig {
	return &config.FilloutConfig{
		BaseURL:    f.Server.URL,
		BaseID:     "base_test",
		APIToken:   "test-token",
		Timeout:    5 * time.Second,
		PageSize:   2000,
		MaxRecords: 10000,
		Tables: config.TablesConfig{
			PayPeriods:  TablePayPeriods,
			TimeCards:   TableTimeCards,
			Punches:     TablePunches,
			Employees:   TableEmployees,
			Departments: TableDepartments,
		},
	}
}

type listRequest struct {
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
	Filters map[string]listCondition `json:"filters"`
}

type listCondition struct {
	In  []string `json:"in"`
	Gte string   `json:"gte"`
	Lte string   `json:"lte"`
}

func (f *FakeRecordStore) handleList(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	f.mu.Lock()
	f.listCalls++
	status := f.failures[table]
	records := f.tables[table]
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"error":"injected failure"}`, status)
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 2000
	}

	var filtered []store.Record
	for _, record := range records {
		if matches(record, req.Filters) {
			filtered = append(filtered, record)
		}
	}

	start := req.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + req.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	json.NewEncoder(w).Encode(map[string]any{
		"records": filtered[start:end],
		"hasMore": end < len(filtered),
	})
}

func (f *FakeRecordStore) handleGet(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")

	f.mu.Lock()
	status := f.failures[table]
	records := f.tables[table]
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"error":"injected failure"}`, status)
		return
	}

	for _, record := range records {
		if record.ID == id {
			json.NewEncoder(w).Encode(record)
			return
		}
	}

	http.Error(w, `{"error":"record not found"}`, http.StatusNotFound)
}

func matches(record store.Record, filters map[string]listCondition) bool {
	for field, cond := range filters {
		if len(cond.In) > 0 {
			values := record.LinkIDs(field)
			if field == "id" {
				values = []string{record.ID}
			}
			if !containsAny(cond.In, values) {
				return false
			}
		}

		if cond.Gte != "" || cond.Lte != "" {
			raw, ok := record.Text(field)
			if !ok {
				return false
			}
			// Range filters compare on the date part, the way the real store
			// compares date columns.
			value := dateOnly(raw)
			if cond.Gte != "" && value < dateOnly(cond.Gte) {
				return false
			}
			if cond.Lte != "" && value > dateOnly(cond.Lte) {
				return false
			}
		}
	}
	return true
}

func containsAny(set []string, values []string) bool {
	for _, v := range values {
		for _, s := range set {
			if v == s {
				return true
			}
		}
	}
	return false
}

func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
