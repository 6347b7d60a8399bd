package services

import (
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// kanjiGroup accumulates the entries that share a written form.
type kanjiGroup struct {
	word     string
	readings *domain.OrderedSet[string]
	senses   *domain.OrderedSet[string]
	pairs    *domain.OrderedSet[domain.SenseReading]
	gloss    string
	raw      domain.RawDictRecord
}

func newKanjiGroup(e domain.NormalizedEntry) *kanjiGroup {
	g := &kanjiGroup{
		word:     e.Word,
		readings: domain.NewOrderedSet[string](),
		senses:   domain.NewOrderedSet[string](),
		pairs:    domain.NewOrderedSet[domain.SenseReading](),
		gloss:    e.Gloss,
		raw:      e.Raw,
	}
	g.merge(e)
	return g
}

// merge folds an entry's reading and senses into the group. A sense text is
// listed once; its pairing with each distinct reading is kept.
func (g *kanjiGroup) merge(e domain.NormalizedEntry) {
	if e.Reading != "" {
		g.readings.Add(e.Reading)
	}
	for _, sense := range e.Senses {
		g.senses.Add(sense)
		g.pairs.Add(domain.SenseReading{Text: sense, Reading: e.Reading})
	}
}

func (g *kanjiGroup) entry() domain.GroupedEntry {
	readings := g.readings.Items()
	reading := ""
	if len(readings) > 0 {
		reading = readings[0]
	}
	return domain.GroupedEntry{
		Word:               g.word,
		Reading:            reading,
		Readings:           readings,
		Headword:           domain.GroupHeadword(g.word, readings),
		Senses:             g.senses.Items(),
		SensesWithReadings: g.pairs.Items(),
		Gloss:              g.gloss,
		Raw:                g.raw,
	}
}

// GroupByKanji merges entries sharing a written form. Entries without a
// written form cannot be grouped and are left out. Groups are returned in
// the order their word was first seen.
func GroupByKanji(entries []domain.NormalizedEntry) []domain.GroupedEntry {
	groups := domain.NewOrderedMap[string, *kanjiGroup]()
	for _, e := range entries {
		if e.Word == "" {
			continue
		}
		if g, ok := groups.Get(e.Word); ok {
			g.merge(e)
			continue
		}
		groups.Set(e.Word, newKanjiGroup(e))
	}

	out := make([]domain.GroupedEntry, 0, groups.Len())
	for _, word := range groups.Keys() {
		g, _ := groups.Get(word)
		out = append(out, g.entry())
	}
	return out
}
