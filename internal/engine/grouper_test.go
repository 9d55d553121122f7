package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func rec(date, merchant, amount string) TransactionRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return TransactionRecord{
		Date:     d,
		Merchant: merchant,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestGroupMergesSimilarMerchants(t *testing.T) {
	g := NewGrouper()
	groups := g.Group([]TransactionRecord{
		rec("2024-01-05", "Netflix", "15.49"),
		rec("2024-02-05", "NETFLIX.COM", "15.49"),
		rec("2024-01-10", "Spotify", "9.99"),
	})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].DisplayMerchant != "Netflix" {
		t.Errorf("DisplayMerchant = %q, want first-seen raw text %q", groups[0].DisplayMerchant, "Netflix")
	}
	if len(groups[0].Members) != 2 {
		t.Errorf("netflix group has %d members, want 2", len(groups[0].Members))
	}
	if len(groups[1].Members) != 1 {
		t.Errorf("spotify group has %d members, want 1", len(groups[1].Members))
	}
}

func TestGroupIdenticalKeysNeverSplit(t *testing.T) {
	g := NewGrouper()
	groups := g.Group([]TransactionRecord{
		rec("2024-01-01", "ACME CORP", "5.00"),
		rec("2024-02-01", "acme corp", "5.00"),
		rec("2024-03-01", "Acme-Corp", "5.00"),
	})

	if len(groups) != 1 {
		t.Fatalf("records with identical normalized keys landed in %d groups, want 1", len(groups))
	}
}

func TestGroupThresholdIsStrict(t *testing.T) {
	// "abcde" vs "abcdx" scores exactly 80, which must not merge.
	g := NewGrouper()
	groups := g.Group([]TransactionRecord{
		rec("2024-01-01", "abcde", "1.00"),
		rec("2024-02-01", "abcdx", "1.00"),
	})

	if len(groups) != 2 {
		t.Fatalf("a score of exactly 80 merged groups; got %d groups, want 2", len(groups))
	}
}

func TestGroupFirstMatchWins(t *testing.T) {
	// The third record is similar to both earlier groups; it must
	// attach to the one created first, with no later rebalancing.
	g := &Grouper{Threshold: 50}
	groups := g.Group([]TransactionRecord{
		rec("2024-01-01", "streamco", "1.00"),
		rec("2024-01-02", "streamcompany", "1.00"),
		rec("2024-01-03", "streamcomp", "1.00"),
	})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Members) != 3 {
		t.Errorf("first group has %d members, want 3", len(groups[0].Members))
	}
	if groups[0].Key != "streamco" {
		t.Errorf("group key = %q, want founding record's key %q", groups[0].Key, "streamco")
	}
}

func TestGroupEmptyKeysGroupTogether(t *testing.T) {
	g := NewGrouper()
	groups := g.Group([]TransactionRecord{
		rec("2024-01-01", "***", "1.00"),
		rec("2024-02-01", "###", "2.00"),
	})

	if len(groups) != 1 {
		t.Fatalf("empty normalized keys produced %d groups, want 1", len(groups))
	}
}

func TestRecurringDropsSingletons(t *testing.T) {
	g := NewGrouper()
	groups := g.Group([]TransactionRecord{
		rec("2024-01-05", "Netflix", "15.49"),
		rec("2024-02-05", "Netflix", "15.49"),
		rec("2024-01-10", "Spotify", "9.99"),
	})

	recurring := Recurring(groups)
	if len(recurring) != 1 {
		t.Fatalf("got %d recurring groups, want 1", len(recurring))
	}
	if recurring[0].DisplayMerchant != "Netflix" {
		t.Errorf("surviving group = %q, want Netflix", recurring[0].DisplayMerchant)
	}
}
