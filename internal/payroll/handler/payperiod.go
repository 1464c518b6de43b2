package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paygrid/payroll-backend/internal/payroll/domain"
	"github.com/paygrid/payroll-backend/internal/payroll/service"
	"github.com/paygrid/payroll-backend/pkg/httputil"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// PayPeriodHandler handles pay period endpoints
type PayPeriodHandler struct {
	summaries  *service.SummaryService
	payPeriods *service.PayPeriodService
	logger     *logger.Logger
}

// NewPayPeriodHandler creates a new pay period handler
func NewPayPeriodHandler(summaries *service.SummaryService, payPeriods *service.PayPeriodService, log *logger.Logger) *PayPeriodHandler {
	return &PayPeriodHandler{
		summaries:  summaries,
		payPeriods: payPeriods,
		logger:     log,
	}
}

type listPayPeriodsQuery struct {
	DepartmentID string `validate:"omitempty"`
	Relevance    string `validate:"omitempty,oneof=current upcoming past"`
}

type payPeriodListItem struct {
	domain.PayPeriod
	Relevance domain.Relevance `json:"relevance"`
}

// List returns all pay periods, optionally filtered by department and
// relevance
// GET /pay-periods?department_id=&relevance=
func (h *PayPeriodHandler) List(w http.ResponseWriter, r *http.Request) {
	query := listPayPeriodsQuery{
		DepartmentID: r.URL.Query().Get("department_id"),
		Relevance:    r.URL.Query().Get("relevance"),
	}
	if err := httputil.Validate(query); err != nil {
		httputil.Error(w, err)
		return
	}

	listings, err := h.payPeriods.List(r.Context(), service.PayPeriodQuery{
		DepartmentID: query.DepartmentID,
		Relevance:    query.Relevance,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	items := make([]payPeriodListItem, 0, len(listings))
	for _, listing := range listings {
		items = append(items, payPeriodListItem{PayPeriod: listing.PayPeriod, Relevance: listing.Relevance})
	}

	httputil.JSON(w, http.StatusOK, items)
}

type timeCardResponse struct {
	ID         string   `json:"id"`
	ClientID   string   `json:"client_id,omitempty"`
	TotalHours *float64 `json:"total_hours,omitempty"`
}

type employeeHoursResponse struct {
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  string             `json:"employee_name"`
	EmployeeEmail string             `json:"employee_email,omitempty"`
	TotalHours    float64            `json:"total_hours"`
	PunchCount    int                `json:"punch_count"`
	TimeCardCount int                `json:"time_card_count"`
	TimeCards     []timeCardResponse `json:"time_cards"`
}

type summaryResponse struct {
	PayPeriod          domain.PayPeriod        `json:"pay_period"`
	EmployeeHours      []employeeHoursResponse `json:"employee_hours"`
	TotalEmployees     int                     `json:"total_employees"`
	TotalHours         float64                 `json:"total_hours"`
	PunchCount         int                     `json:"punch_count"`
	TimeCardCount      int                     `json:"time_card_count"`
	PossiblyIncomplete bool                    `json:"possibly_incomplete"`
}

// GetSummary returns the worked-hours summary for a pay period
// GET /pay-periods/{id}/summary
func (h *PayPeriodHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	payPeriodID := chi.URLParam(r, "id")

	summary, err := h.summaries.Summarize(r.Context(), payPeriodID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toSummaryResponse(summary))
}

func toSummaryResponse(summary *domain.PayPeriodSummary) summaryResponse {
	employees := make([]employeeHoursResponse, 0, len(summary.EmployeeHours))
	for _, eh := range summary.EmployeeHours {
		cards := make([]timeCardResponse, 0, len(eh.TimeCards))
		for _, card := range eh.TimeCards {
			item := timeCardResponse{ID: card.ID, ClientID: card.ClientID}
			if card.TotalHours != nil {
				hours := card.TotalHours.InexactFloat64()
				item.TotalHours = &hours
			}
			cards = append(cards, item)
		}

		employees = append(employees, employeeHoursResponse{
			EmployeeID:    eh.EmployeeID,
			EmployeeName:  eh.Name,
			EmployeeEmail: eh.Email,
			TotalHours:    eh.TotalHours.InexactFloat64(),
			PunchCount:    eh.PunchCount,
			TimeCardCount: len(eh.TimeCards),
			TimeCards:     cards,
		})
	}

	return summaryResponse{
		PayPeriod:          summary.PayPeriod,
		EmployeeHours:      employees,
		TotalEmployees:     summary.TotalEmployees,
		TotalHours:         summary.TotalHours.InexactFloat64(),
		PunchCount:         summary.PunchCount,
		TimeCardCount:      summary.TimeCardCount,
		PossiblyIncomplete: summary.PossiblyIncomplete,
	}
}
