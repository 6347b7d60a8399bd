package services

import (
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// Deduplicated is the output of Deduplicate.
type Deduplicated struct {
	// Entries holds every entry whose headword was seen first, in term order.
	Entries []domain.NormalizedEntry

	// ActiveWords lists the terms that produced at least one entry.
	ActiveWords *domain.OrderedSet[string]

	// WordToResults maps each active term to all of its entries.
	WordToResults *domain.OrderedMap[string, []domain.NormalizedEntry]
}

// Deduplicate flattens per-term results in order and keeps the first entry
// for each headword.
func Deduplicate(results []domain.TermResults) Deduplicated {
	out := Deduplicated{
		Entries:       []domain.NormalizedEntry{},
		ActiveWords:   domain.NewOrderedSet[string](),
		WordToResults: domain.NewOrderedMap[string, []domain.NormalizedEntry](),
	}

	seen := domain.NewOrderedSet[string]()
	for _, r := range results {
		if len(r.Items) == 0 {
			continue
		}
		out.ActiveWords.Add(r.Term)
		out.WordToResults.Set(r.Term, r.Items)

		for _, item := range r.Items {
			if item.Headword == "" || !seen.Add(item.Headword) {
				continue
			}
			out.Entries = append(out.Entries, item)
		}
	}
	return out
}
