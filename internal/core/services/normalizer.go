package services

import (
	"strings"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// NormalizeRecord reduces a raw record to its display fields.
// Only the first Japanese form is used. Missing data becomes placeholders.
func NormalizeRecord(rec domain.RawDictRecord) domain.NormalizedEntry {
	form := rec.PrimaryForm()
	word := form.WordValue()
	reading := form.ReadingValue()

	senses := make([]string, 0, len(rec.Senses))
	for _, s := range rec.Senses {
		if joined := strings.Join(s.EnglishDefinitions, ", "); joined != "" {
			senses = append(senses, joined)
		}
	}

	gloss := domain.NoGlossPlaceholder
	if len(senses) > 0 {
		gloss = senses[0]
	}

	return domain.NormalizedEntry{
		Headword: domain.Headword(word, reading),
		Word:     word,
		Reading:  reading,
		Gloss:    gloss,
		Senses:   senses,
		Raw:      rec,
	}
}

// normalizeAll normalizes records in order.
func normalizeAll(records []domain.RawDictRecord) []domain.NormalizedEntry {
	out := make([]domain.NormalizedEntry, len(records))
	for i := range records {
		out[i] = NormalizeRecord(records[i])
	}
	return out
}
