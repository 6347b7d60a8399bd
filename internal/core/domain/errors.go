package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenization indicates the tokenizer failed on a selection.
	ErrTokenization = errors.New("tokenization failed")

	// ErrLookup indicates the lookup batch as a whole failed.
	// Failures of individual terms are not reported with this error.
	ErrLookup = errors.New("lookup failed")

	// ErrSuperseded indicates a resolution pass was replaced by a newer one
	// before it finished. Its results were discarded.
	ErrSuperseded = errors.New("resolution superseded")

	// ErrTokenizerUnavailable indicates no tokenizer is configured.
	ErrTokenizerUnavailable = errors.New("tokenizer unavailable")

	// ErrDictionaryUnavailable indicates no dictionary backend is configured.
	ErrDictionaryUnavailable = errors.New("dictionary unavailable")

	// ErrRateLimited indicates the dictionary backend rejected a request
	// because of its rate limit.
	ErrRateLimited = errors.New("rate limited")
)

// User-visible messages placed in Resolution.ErrorMsg.
const (
	tokenizationFailedPrefix = "Tokenization failed: "
	lookupFailedPrefix       = "Lookup failed: "

	// NoResultsMessage is shown when a pass completes with nothing to display.
	NoResultsMessage = "No results for selected tokens."
)

// TokenizationFailedMessage formats the message for a tokenizer failure.
func TokenizationFailedMessage(err error) string {
	return tokenizationFailedPrefix + errorText(err)
}

// LookupFailedMessage formats the message for a failed lookup batch.
func LookupFailedMessage(err error) string {
	return lookupFailedPrefix + errorText(err)
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
