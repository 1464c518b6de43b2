package store

// Filter is the per-field condition map sent to the records/list endpoint.
// The store's filtering is best-effort; callers must be prepared for it to
// return nothing useful and re-filter client side.
type Filter map[string]Condition

// Condition is a single field condition. Exactly one of the operator groups
// should be set.
type Condition struct {
	In  []string `json:"in,omitempty"`
	Gte string   `json:"gte,omitempty"`
	Lte string   `json:"lte,omitempty"`
}

// AnyOf builds a membership condition.
func AnyOf(values ...string) Condition {
	return Condition{In: values}
}

// Between builds an inclusive range condition.
func Between(gte, lte string) Condition {
	return Condition{Gte: gte, Lte: lte}
}
