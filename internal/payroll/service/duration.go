package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paygrid/payroll-backend/pkg/logger"
)

// maxPunchHours caps a single punch. Anything longer means a missed punch-out
// got paired with a later, unrelated punch-in.
var maxPunchHours = decimal.NewFromInt(24)

// The store delivers timestamps in several shapes depending on how the punch
// was recorded.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DurationCalculator converts a punch-in/punch-out pair into a bounded hour
// value. It never fails: malformed upstream data degrades to a zero
// contribution so the report as a whole still completes.
type DurationCalculator struct {
	logger *logger.Logger
}

// NewDurationCalculator creates a new duration calculator
func NewDurationCalculator(log *logger.Logger) *DurationCalculator {
	return &DurationCalculator{logger: log.WithComponent("duration")}
}

// Hours returns the worked hours for one punch, clamped to [0, 24]. An open
// punch (no punch-out) and any unparsable timestamp contribute zero; the
// malformed value is logged for operator visibility, never surfaced.
func (c *DurationCalculator) Hours(punchIn, punchOut string) decimal.Decimal {
	if punchIn == "" || punchOut == "" {
		return decimal.Zero
	}

	in, err := parseTimestamp(punchIn)
	if err != nil {
		c.logger.Warn().Str("punch_in", punchIn).Msg("unparsable punch-in timestamp, counting 0 hours")
		return decimal.Zero
	}

	out, err := parseTimestamp(punchOut)
	if err != nil {
		c.logger.Warn().Str("punch_out", punchOut).Msg("unparsable punch-out timestamp, counting 0 hours")
		return decimal.Zero
	}

	hours := decimal.NewFromFloat(out.Sub(in).Hours())
	if hours.IsNegative() {
		c.logger.Warn().
			Str("punch_in", punchIn).
			Str("punch_out", punchOut).
			Msg("punch-out precedes punch-in, counting 0 hours")
		return decimal.Zero
	}
	if hours.GreaterThan(maxPunchHours) {
		c.logger.Warn().
			Str("punch_in", punchIn).
			Str("punch_out", punchOut).
			Msg("punch exceeds 24 hours, clamping")
		return maxPunchHours
	}

	return hours
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
