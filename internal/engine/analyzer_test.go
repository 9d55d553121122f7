package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// stubResolver returns a fixed link for every merchant.
type stubResolver struct {
	link  string
	calls []string
}

func (s *stubResolver) Resolve(_ context.Context, merchant string) string {
	s.calls = append(s.calls, merchant)
	return s.link
}

func TestAnalyzeEndToEnd(t *testing.T) {
	resolver := &stubResolver{link: "https://example.com/cancel"}
	a := NewAnalyzer(resolver, zerolog.Nop())

	result := a.Analyze(context.Background(), []TransactionRecord{
		rec("2024-01-05", "Netflix", "15.49"),
		rec("2024-02-05", "NETFLIX.COM", "15.49"),
		rec("2024-01-10", "Spotify", "9.99"),
	})

	if len(result.Groups) != 1 {
		t.Fatalf("got %d groups, want exactly 1 (Spotify is a singleton)", len(result.Groups))
	}

	g := result.Groups[0]
	if g.DisplayMerchant != "Netflix" {
		t.Errorf("DisplayMerchant = %q, want Netflix", g.DisplayMerchant)
	}
	if g.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", g.MemberCount)
	}
	if !g.MonthlyCost.Equal(decimal.RequireFromString("15.49")) {
		t.Errorf("MonthlyCost = %s, want 15.49", g.MonthlyCost)
	}
	if g.Frequency != FrequencyMonthly {
		t.Errorf("Frequency = %v, want Monthly", g.Frequency)
	}
	if g.CancellationLink != resolver.link {
		t.Errorf("CancellationLink = %q, want %q", g.CancellationLink, resolver.link)
	}
	if !result.TotalMonthlySavings.Equal(decimal.RequireFromString("15.49")) {
		t.Errorf("TotalMonthlySavings = %s, want 15.49", result.TotalMonthlySavings)
	}
	if len(resolver.calls) != 1 || resolver.calls[0] != "Netflix" {
		t.Errorf("resolver called with %v, want [Netflix]", resolver.calls)
	}
}

func TestAnalyzeSavingsIsSumOfGroupCosts(t *testing.T) {
	a := NewAnalyzer(nil, zerolog.Nop())

	result := a.Analyze(context.Background(), []TransactionRecord{
		rec("2024-01-05", "Netflix", "15.49"),
		rec("2024-02-05", "Netflix", "15.49"),
		rec("2024-01-10", "Spotify", "9.99"),
		rec("2024-02-10", "Spotify", "9.99"),
	})

	sum := decimal.Zero
	for _, g := range result.Groups {
		sum = sum.Add(g.MonthlyCost)
	}
	if !result.TotalMonthlySavings.Equal(sum) {
		t.Errorf("TotalMonthlySavings = %s, want sum of group costs %s", result.TotalMonthlySavings, sum)
	}
}

func TestAnalyzeNeverFailsOnDegenerateInput(t *testing.T) {
	a := NewAnalyzer(nil, zerolog.Nop())

	result := a.Analyze(context.Background(), []TransactionRecord{
		rec("2024-01-01", "", "0"),
		rec("2024-01-01", "", "0"),
		rec("2024-01-02", "***", "0"),
	})

	// Empty and symbol-only merchants share the empty key: one group,
	// zero cost, no crash.
	if len(result.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(result.Groups))
	}
	if !result.TotalMonthlySavings.Equal(decimal.Zero) {
		t.Errorf("TotalMonthlySavings = %s, want 0", result.TotalMonthlySavings)
	}
}

func TestExcludingRecomputesSavings(t *testing.T) {
	a := NewAnalyzer(nil, zerolog.Nop())

	result := a.Analyze(context.Background(), []TransactionRecord{
		rec("2024-01-05", "Netflix", "15.49"),
		rec("2024-02-05", "Netflix", "15.49"),
		rec("2024-01-10", "Spotify", "9.99"),
		rec("2024-02-10", "Spotify", "9.99"),
	})
	if len(result.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(result.Groups))
	}

	excluded := result.Excluding("Spotify")
	if len(excluded.Groups) != 1 {
		t.Fatalf("after exclusion got %d groups, want 1", len(excluded.Groups))
	}

	var spotifyCost decimal.Decimal
	for _, g := range result.Groups {
		if g.DisplayMerchant == "Spotify" {
			spotifyCost = g.MonthlyCost
		}
	}
	wantTotal := result.TotalMonthlySavings.Sub(spotifyCost)
	if !excluded.TotalMonthlySavings.Equal(wantTotal) {
		t.Errorf("excluded total = %s, want %s (original minus Spotify's cost)", excluded.TotalMonthlySavings, wantTotal)
	}

	// Excluding by group ID works the same way.
	byID := result.Excluding(result.Groups[0].ID)
	if len(byID.Groups) != 1 {
		t.Fatalf("exclusion by ID got %d groups, want 1", len(byID.Groups))
	}

	// The original analysis is untouched.
	if len(result.Groups) != 2 {
		t.Errorf("original analysis mutated by Excluding")
	}
}
