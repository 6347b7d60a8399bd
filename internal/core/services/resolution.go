package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// Ensure ResolutionService implements the interface.
var _ driving.ResolutionService = (*ResolutionService)(nil)

// ResolutionService runs the resolution pipeline and owns the resolution
// state. The lock is held only while the state changes, never across calls
// to the tokenizer or dictionary.
type ResolutionService struct {
	tokenizer  driven.Tokenizer
	dictionary driven.Dictionary

	mu          sync.Mutex
	state       domain.Resolution
	passID      string
	cancelPass  context.CancelFunc
	concurrency int

	subscribers map[int]chan domain.Resolution
	nextSubID   int
}

// NewResolutionService creates a resolution service with empty state.
func NewResolutionService(tokenizer driven.Tokenizer, dictionary driven.Dictionary) *ResolutionService {
	state := domain.NewResolution()
	state.PrimaryResults = []domain.GroupedEntry{}
	state.SecondaryResults = []domain.GroupedEntry{}
	state.UpdatedAt = time.Now()

	return &ResolutionService{
		tokenizer:   tokenizer,
		dictionary:  dictionary,
		state:       state,
		concurrency: DefaultConcurrency,
		subscribers: make(map[int]chan domain.Resolution),
	}
}

// SetConcurrency bounds the lookups in flight for subsequent passes.
// Values below one restore the default.
func (s *ResolutionService) SetConcurrency(n int) {
	if n <= 0 {
		n = DefaultConcurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concurrency = n
}

// HandleSelection resolves text into primary and secondary entries.
func (s *ResolutionService) HandleSelection(ctx context.Context, text string) (domain.Resolution, error) {
	logger.Section("Resolution Pass")
	logger.Debug("Selection: %q", text)

	if strings.TrimSpace(text) == "" {
		logger.Debug("Blank selection, clearing results")
		return s.clear(text), nil
	}

	passID, passCtx, done := s.beginPass(ctx, text)
	defer done()
	logger.Debug("Pass ID: %s", passID)

	tokens, err := s.tokenize(passCtx, text)
	if err != nil {
		logger.Warn("Tokenization failed: %v", err)
		return s.failTokenization(passID, err)
	}

	candidates := ExtractCandidates(text, tokens)
	logger.Debug("Tokens: %d, candidates: %v", len(tokens), candidates)

	snap, ok := s.update(passID, func(st *domain.Resolution) {
		st.Analyzing = false
		st.Tokens = tokens
	})
	if !ok {
		return snap, domain.ErrSuperseded
	}
	if len(candidates) == 0 {
		return snap, nil
	}

	// Results, active terms and message are cleared when the batch starts.
	if snap, ok = s.update(passID, func(st *domain.Resolution) {
		st.Loading = true
		st.ErrorMsg = ""
		resetResults(st)
	}); !ok {
		return snap, domain.ErrSuperseded
	}

	results, err := s.lookup(passCtx, candidates)
	if err != nil {
		logger.Warn("Lookup batch failed: %v", err)
		snap, ok = s.update(passID, func(st *domain.Resolution) {
			st.Loading = false
			st.ErrorMsg = domain.LookupFailedMessage(err)
		})
		if !ok {
			return snap, domain.ErrSuperseded
		}
		return snap, fmt.Errorf("%w: %w", domain.ErrLookup, err)
	}

	deduped := Deduplicate(results)
	grouped := GroupByKanji(deduped.Entries)
	primary, secondary := Classify(grouped, text)
	logger.Info("Resolved %d entries (%d primary, %d secondary) from %d candidates",
		len(deduped.Entries), len(primary), len(secondary), len(candidates))

	snap, ok = s.update(passID, func(st *domain.Resolution) {
		st.Loading = false
		st.PrimaryResults = primary
		st.SecondaryResults = secondary
		st.ActiveWords = deduped.ActiveWords
		st.WordToResults = deduped.WordToResults
		if len(primary) == 0 && len(secondary) == 0 {
			st.ErrorMsg = domain.NoResultsMessage
		}
	})
	if !ok {
		return snap, domain.ErrSuperseded
	}
	return snap, nil
}

// RemoveResult removes the entry with entry's headword. When no remaining
// entry shares its word, the word is dropped from the active terms.
func (s *ResolutionService) RemoveResult(entry domain.GroupedEntry) domain.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Headword == "" {
		return s.state.Clone()
	}

	next := s.state.Clone()
	next.PrimaryResults = withoutHeadword(next.PrimaryResults, entry.Headword)
	next.SecondaryResults = withoutHeadword(next.SecondaryResults, entry.Headword)

	if entry.Word != "" && !hasWord(next.Results(), entry.Word) {
		next.ActiveWords.Delete(entry.Word)
		next.WordToResults.Delete(entry.Word)
	}

	logger.Debug("Removed %q", entry.Headword)
	return s.commitLocked(next)
}

// Snapshot returns a copy of the current state.
func (s *ResolutionService) Snapshot() domain.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers an observer. The current state is delivered first.
func (s *ResolutionService) Subscribe() (<-chan domain.Resolution, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.Resolution, 1)
	ch <- s.state.Clone()
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

func (s *ResolutionService) tokenize(ctx context.Context, text string) ([]domain.Token, error) {
	if s.tokenizer == nil {
		return nil, domain.ErrTokenizerUnavailable
	}
	defer logger.Timed("tokenize")()
	return s.tokenizer.Tokenize(ctx, text)
}

func (s *ResolutionService) lookup(ctx context.Context, candidates []string) ([]domain.TermResults, error) {
	if s.dictionary == nil {
		return nil, domain.ErrDictionaryUnavailable
	}
	s.mu.Lock()
	limit := s.concurrency
	s.mu.Unlock()
	return dispatchLookups(ctx, s.dictionary, candidates, limit)
}

// beginPass makes a new pass current and cancels the one it replaces.
// The returned func releases the pass context.
func (s *ResolutionService) beginPass(ctx context.Context, text string) (string, context.Context, func()) {
	passCtx, cancel := context.WithCancel(ctx)
	passID := uuid.NewString()

	s.mu.Lock()
	if s.cancelPass != nil {
		logger.Debug("Superseding pass %s", s.passID)
		s.cancelPass()
	}
	s.passID = passID
	s.cancelPass = cancel

	next := s.state.Clone()
	next.PassID = passID
	next.Text = text
	next.OriginalSelection = text
	next.Analyzing = true
	s.commitLocked(next)
	s.mu.Unlock()

	return passID, passCtx, func() {
		s.mu.Lock()
		if s.passID == passID {
			s.cancelPass = nil
		}
		s.mu.Unlock()
		cancel()
	}
}

// failTokenization ends the pass with a tokenizer failure. Previous results
// are cleared so they are not shown against the new selection.
func (s *ResolutionService) failTokenization(passID string, err error) (domain.Resolution, error) {
	snap, ok := s.update(passID, func(st *domain.Resolution) {
		st.Analyzing = false
		st.Loading = false
		st.ErrorMsg = domain.TokenizationFailedMessage(err)
		st.Tokens = nil
		resetResults(st)
	})
	if !ok {
		return snap, domain.ErrSuperseded
	}
	return snap, fmt.Errorf("%w: %w", domain.ErrTokenization, err)
}

// clear empties the state and abandons any pass in flight.
func (s *ResolutionService) clear(text string) domain.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelPass != nil {
		s.cancelPass()
		s.cancelPass = nil
	}
	s.passID = ""

	next := s.state.Clone()
	next.PassID = ""
	next.Text = text
	next.OriginalSelection = ""
	next.ErrorMsg = ""
	next.Loading = false
	next.Analyzing = false
	next.Tokens = nil
	resetResults(&next)
	return s.commitLocked(next)
}

// update applies fn to a copy of the state if passID is still current.
// It reports false, with the current state, when the pass was superseded.
func (s *ResolutionService) update(passID string, fn func(*domain.Resolution)) (domain.Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passID != passID {
		logger.Debug("Discarding update from stale pass %s", passID)
		return s.state.Clone(), false
	}
	next := s.state.Clone()
	fn(&next)
	return s.commitLocked(next), true
}

// commitLocked installs next and notifies subscribers. Caller holds mu.
func (s *ResolutionService) commitLocked(next domain.Resolution) domain.Resolution {
	next.UpdatedAt = time.Now()
	s.state = next

	for _, ch := range s.subscribers {
		snap := next.Clone()
		select {
		case ch <- snap:
		default:
			// Replace the undelivered snapshot; only commitLocked sends.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return next.Clone()
}

func resetResults(st *domain.Resolution) {
	st.PrimaryResults = []domain.GroupedEntry{}
	st.SecondaryResults = []domain.GroupedEntry{}
	st.ActiveWords = domain.NewOrderedSet[string]()
	st.WordToResults = domain.NewOrderedMap[string, []domain.NormalizedEntry]()
}

func withoutHeadword(entries []domain.GroupedEntry, headword string) []domain.GroupedEntry {
	out := make([]domain.GroupedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Headword != headword {
			out = append(out, e)
		}
	}
	return out
}

func hasWord(entries []domain.GroupedEntry, word string) bool {
	for _, e := range entries {
		if e.Word == word {
			return true
		}
	}
	return false
}
