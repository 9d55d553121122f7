// Package engine implements recurring-charge detection over parsed
// statement transactions: merchant normalization, fuzzy grouping,
// frequency and monthly-cost estimation, and the analysis orchestrator.
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is a single parsed statement line. Records arrive
// from the statement-parsing layer already validated: the date is a
// real calendar date and the amount is a well-formed decimal.
type TransactionRecord struct {
	Date     time.Time
	Merchant string
	Amount   decimal.Decimal
}

// Frequency classifies how often a recurring charge lands.
type Frequency int

const (
	FrequencyUnknown Frequency = iota
	FrequencyWeekly
	FrequencyBiweekly
	FrequencyMonthly
	FrequencyIrregular
)

// String returns the display name of the frequency.
func (f Frequency) String() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyBiweekly:
		return "Biweekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyIrregular:
		return "Irregular"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so frequencies render
// as their display names in JSON payloads.
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Weekly":
		*f = FrequencyWeekly
	case "Biweekly":
		*f = FrequencyBiweekly
	case "Monthly":
		*f = FrequencyMonthly
	case "Irregular":
		*f = FrequencyIrregular
	case "Unknown", "":
		*f = FrequencyUnknown
	default:
		return fmt.Errorf("unknown frequency %q", b)
	}
	return nil
}

// RecurringGroup collects the transactions judged to belong to one
// merchant. Groups live for a single analysis run: the grouper creates
// them, appends members in discovery order, and the analyzer freezes
// them once the whole batch has been processed.
type RecurringGroup struct {
	ID string

	// Key is the normalized merchant key of the founding record. All
	// similarity comparisons during grouping run against this key.
	Key string

	// DisplayMerchant is the raw merchant text of the first record
	// seen for this group, kept for presentation.
	DisplayMerchant string

	Members []TransactionRecord

	EstimatedFrequency Frequency
	CancellationLink   string
}

// MonthlyCost is the arithmetic mean of the member amounts. This is
// deliberately a plain average rather than a time-normalized
// projection; see EstimateFrequency for the interval analysis.
// Recomputed on demand, never stored.
func (g *RecurringGroup) MonthlyCost() decimal.Decimal {
	if len(g.Members) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, m := range g.Members {
		sum = sum.Add(m.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(g.Members))))
}

// AnnotatedGroup is the presentation-ready view of a recurring group.
type AnnotatedGroup struct {
	ID               string          `json:"id"`
	DisplayMerchant  string          `json:"displayMerchant"`
	MonthlyCost      decimal.Decimal `json:"monthlyCost"`
	Frequency        Frequency       `json:"frequency"`
	CancellationLink string          `json:"cancellationLink"`
	MemberCount      int             `json:"memberCount"`
}
