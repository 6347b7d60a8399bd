package services

import (
	"strings"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// Classify splits entries into those whose written form appears literally in
// the selection (primary) and the rest (secondary). Input order is kept.
func Classify(entries []domain.GroupedEntry, original string) (primary, secondary []domain.GroupedEntry) {
	primary = []domain.GroupedEntry{}
	secondary = []domain.GroupedEntry{}
	for _, e := range entries {
		if e.Word != "" && strings.Contains(original, e.Word) {
			primary = append(primary, e)
		} else {
			secondary = append(secondary, e)
		}
	}
	return primary, secondary
}
