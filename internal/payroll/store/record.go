package store

import "strconv"

// Record is a raw row from the record store: an opaque ID plus a loosely
// typed field map. Field names are not stable across tables (the store mixes
// "name"/"Name", "punch_in_time"/"Punch In Time"), so every accessor takes a
// list of candidate names and returns the first usable value.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Text returns the first non-empty string value among the named fields.
func (r Record) Text(names ...string) (string, bool) {
	for _, name := range names {
		if s, ok := r.Fields[name].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Number returns the first numeric value among the named fields. JSON numbers
// decode as float64; numeric strings are accepted as well because computed
// columns sometimes arrive stringified.
func (r Record) Number(names ...string) (float64, bool) {
	for _, name := range names {
		switch v := r.Fields[name].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// LinkID unwraps a link field to a single record ID. Link fields arrive as a
// scalar ID, a singleton list, or not at all; this is the only place that
// ambiguity is handled.
func (r Record) LinkID(names ...string) (string, bool) {
	for _, name := range names {
		switch v := r.Fields[name].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s, true
				}
			}
		}
	}
	return "", false
}

// LinkIDs returns every ID carried by the named link fields, preserving
// order. A scalar value counts as a one-element list.
func (r Record) LinkIDs(names ...string) []string {
	var ids []string
	for _, name := range names {
		switch v := r.Fields[name].(type) {
		case string:
			if v != "" {
				ids = append(ids, v)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					ids = append(ids, s)
				}
			}
		}
	}
	return ids
}
