package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Interval bands in days, matching how charges actually drift around
// their nominal schedule (a "monthly" charge lands anywhere from the
// 27th-day mark to just past a 31-day month).
const (
	weeklyMinDays   = 5
	weeklyMaxDays   = 9
	biweeklyMinDays = 12
	biweeklyMaxDays = 16
	monthlyMinDays  = 27
	monthlyMaxDays  = 34
)

// EstimateFrequency classifies a group's recurrence interval from the
// median day-gap between consecutive date-sorted members. Zero-day
// gaps (same-day duplicates) carry no interval information and are
// ignored; with no positive gap at all the frequency is Unknown. A
// group with exactly two members and a single gap still classifies,
// just with low confidence.
func EstimateFrequency(members []TransactionRecord) Frequency {
	if len(members) < 2 {
		return FrequencyUnknown
	}

	sorted := make([]TransactionRecord, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].Date.Sub(sorted[i-1].Date).Hours() / 24
		if days > 0 {
			gaps = append(gaps, days)
		}
	}
	if len(gaps) == 0 {
		return FrequencyUnknown
	}

	gap := medianGap(gaps)
	switch {
	case gap >= weeklyMinDays && gap <= weeklyMaxDays:
		return FrequencyWeekly
	case gap >= biweeklyMinDays && gap <= biweeklyMaxDays:
		return FrequencyBiweekly
	case gap >= monthlyMinDays && gap <= monthlyMaxDays:
		return FrequencyMonthly
	default:
		return FrequencyIrregular
	}
}

func medianGap(gaps []float64) float64 {
	sort.Float64s(gaps)
	n := len(gaps)
	if n%2 == 1 {
		return gaps[n/2]
	}
	return (gaps[n/2-1] + gaps[n/2]) / 2
}

// Estimate freezes a group: it computes the recurrence frequency,
// stores it on the group, and returns it alongside the monthly cost.
func Estimate(g *RecurringGroup) (Frequency, decimal.Decimal) {
	g.EstimatedFrequency = EstimateFrequency(g.Members)
	return g.EstimatedFrequency, g.MonthlyCost()
}
