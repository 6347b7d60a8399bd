package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// Ensure DictionaryService implements the interface.
var _ driving.DictionaryService = (*DictionaryService)(nil)

// maxImportLine bounds a single JSON line; common words carry many senses.
const maxImportLine = 4 << 20

// importLine is one line of an import file: a term and the body a
// dictionary returned for it.
type importLine struct {
	Term string                 `json:"term"`
	Data []domain.RawDictRecord `json:"data"`
}

// DictionaryService manages the offline dictionary.
type DictionaryService struct {
	store driven.DictionaryStore
}

// NewDictionaryService creates a dictionary service over store.
func NewDictionaryService(store driven.DictionaryStore) *DictionaryService {
	return &DictionaryService{store: store}
}

// Import reads JSON Lines into the store. Blank lines are ignored; lines
// that fail to parse or lack a term are counted as skipped.
func (s *DictionaryService) Import(ctx context.Context, r io.Reader) (driving.ImportStats, error) {
	logger.Section("Dictionary Import")

	var stats driving.ImportStats
	if s.store == nil {
		return stats, domain.ErrDictionaryUnavailable
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxImportLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var line importLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			logger.Warn("Line %d: %v", lineNo, err)
			stats.Skipped++
			continue
		}
		term := strings.TrimSpace(line.Term)
		if term == "" {
			logger.Warn("Line %d: missing term", lineNo)
			stats.Skipped++
			continue
		}

		if err := s.store.Put(ctx, term, line.Data); err != nil {
			return stats, fmt.Errorf("import %q: %w", term, err)
		}
		stats.Terms++
		stats.Records += len(line.Data)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read import: %w", err)
	}

	logger.Info("Imported %d terms (%d records), skipped %d lines", stats.Terms, stats.Records, stats.Skipped)
	if stats.Terms == 0 && stats.Skipped > 0 {
		return stats, fmt.Errorf("%w: no valid lines", domain.ErrInvalidInput)
	}
	return stats, nil
}

// Count returns the number of stored terms.
func (s *DictionaryService) Count(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, domain.ErrDictionaryUnavailable
	}
	return s.store.Count(ctx)
}
