package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventSummaryGenerated = "payroll.summary.generated"
)

// Exchange names
const (
	ExchangePayrollEvents = "payroll.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// SummaryGeneratedEvent is published after a pay period summary has been
// computed, so payout tooling can pick it up without re-running the
// aggregation.
type SummaryGeneratedEvent struct {
	PayPeriodID        string  `json:"pay_period_id"`
	TotalEmployees     int     `json:"total_employees"`
	TotalHours         float64 `json:"total_hours"`
	PossiblyIncomplete bool    `json:"possibly_incomplete"`
}
