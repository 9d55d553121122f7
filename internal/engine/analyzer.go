package engine

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LinkResolver maps a merchant's display name to a cancellation URL.
// Implementations are total: they always return a usable URL and never
// fail (see internal/links).
type LinkResolver interface {
	Resolve(ctx context.Context, merchant string) string
}

// Analyzer composes grouping, estimation and link resolution into a
// single pass over a batch of transactions. The analyzer owns its
// groups for the duration of one Analyze call; the resolver is a
// shared, long-lived collaborator passed in at construction.
type Analyzer struct {
	grouper  *Grouper
	resolver LinkResolver
	log      zerolog.Logger
}

// NewAnalyzer builds an Analyzer. resolver may be nil, in which case
// groups are emitted without cancellation links.
func NewAnalyzer(resolver LinkResolver, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		grouper:  NewGrouper(),
		resolver: resolver,
		log:      log,
	}
}

// SetThreshold overrides the grouping similarity threshold.
func (a *Analyzer) SetThreshold(threshold int) {
	if threshold > 0 && threshold <= 100 {
		a.grouper.Threshold = threshold
	}
}

// Analysis is the result of one Analyze call: annotated recurring
// groups in discovery order plus the aggregate monthly savings figure.
type Analysis struct {
	Groups              []AnnotatedGroup `json:"groups"`
	TotalMonthlySavings decimal.Decimal  `json:"totalMonthlySavings"`
}

// Analyze runs the whole pipeline: group, drop singletons, estimate
// frequency and cost per group, resolve cancellation links, and sum
// the savings total. It never fails for well-formed input — degenerate
// data (empty merchants, zero amounts, odd date spreads) flows through
// as Unknown/Irregular groups rather than aborting the batch.
func (a *Analyzer) Analyze(ctx context.Context, records []TransactionRecord) *Analysis {
	groups := a.grouper.Group(records)
	recurring := Recurring(groups)

	a.log.Debug().
		Int("records", len(records)).
		Int("groups", len(groups)).
		Int("recurring", len(recurring)).
		Msg("grouped transactions")

	annotated := make([]AnnotatedGroup, 0, len(recurring))
	total := decimal.Zero

	for _, g := range recurring {
		freq, cost := Estimate(g)
		if a.resolver != nil {
			g.CancellationLink = a.resolver.Resolve(ctx, g.DisplayMerchant)
		}

		annotated = append(annotated, AnnotatedGroup{
			ID:               g.ID,
			DisplayMerchant:  g.DisplayMerchant,
			MonthlyCost:      cost,
			Frequency:        freq,
			CancellationLink: g.CancellationLink,
			MemberCount:      len(g.Members),
		})
		total = total.Add(cost)
	}

	return &Analysis{Groups: annotated, TotalMonthlySavings: total}
}

// Excluding returns a copy of the analysis with the named groups
// removed and the savings total recomputed over the retained groups.
// Entries in exclude may be group IDs or display merchant names
// ("keep this subscription" actions from the caller). This is a pure
// recomputation — grouping is not re-run.
func (r *Analysis) Excluding(exclude ...string) *Analysis {
	if len(exclude) == 0 {
		return r
	}
	drop := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		drop[e] = true
	}

	kept := make([]AnnotatedGroup, 0, len(r.Groups))
	total := decimal.Zero
	for _, g := range r.Groups {
		if drop[g.ID] || drop[g.DisplayMerchant] {
			continue
		}
		kept = append(kept, g)
		total = total.Add(g.MonthlyCost)
	}
	return &Analysis{Groups: kept, TotalMonthlySavings: total}
}
