package engine

import "github.com/google/uuid"

// Grouper partitions transactions into recurring-merchant groups using
// fuzzy matching on normalized merchant keys.
type Grouper struct {
	// Threshold is the similarity score a record must strictly exceed
	// against an existing group's key to join that group.
	Threshold int
}

// NewGrouper returns a Grouper with the default threshold.
func NewGrouper() *Grouper {
	return &Grouper{Threshold: DefaultSimilarityThreshold}
}

// Group processes records in input order. Each record joins the first
// existing group (in creation order) whose key it scores strictly above
// the threshold against; otherwise it founds a new group keyed by its
// own normalized merchant. First-match-wins keeps grouping
// deterministic and O(n*g); no merging of already-created groups
// happens afterwards. Singleton groups are kept here for diagnostics —
// callers wanting only recurring charges filter with Recurring.
func (g *Grouper) Group(records []TransactionRecord) []*RecurringGroup {
	var groups []*RecurringGroup

	for _, rec := range records {
		key := NormalizeKey(rec.Merchant)

		var matched *RecurringGroup
		for _, grp := range groups {
			if Similarity(key, grp.Key) > g.Threshold {
				matched = grp
				break
			}
		}

		if matched != nil {
			matched.Members = append(matched.Members, rec)
			continue
		}

		groups = append(groups, &RecurringGroup{
			ID:              uuid.New().String(),
			Key:             key,
			DisplayMerchant: rec.Merchant,
			Members:         []TransactionRecord{rec},
		})
	}

	return groups
}

// Recurring filters out singleton groups: a single charge is not a
// recurring one. Discovery order is preserved.
func Recurring(groups []*RecurringGroup) []*RecurringGroup {
	out := make([]*RecurringGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Members) >= 2 {
			out = append(out, g)
		}
	}
	return out
}
