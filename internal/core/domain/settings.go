package domain

import (
	"strconv"
	"time"
)

const unknownDescription = "Unknown"

// TokenizerMode selects how the morphological analyzer segments text.
type TokenizerMode string

// Available tokenizer modes.
const (
	// TokenizerModeNormal segments text as written.
	TokenizerModeNormal TokenizerMode = "normal"

	// TokenizerModeSearch additionally splits long compound nouns.
	TokenizerModeSearch TokenizerMode = "search"

	// TokenizerModeExtended is search mode with unknown words split into characters.
	TokenizerModeExtended TokenizerMode = "extended"
)

// IsValid returns true if the tokenizer mode is recognised.
func (m TokenizerMode) IsValid() bool {
	switch m {
	case TokenizerModeNormal, TokenizerModeSearch, TokenizerModeExtended:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m TokenizerMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m TokenizerMode) Description() string {
	switch m {
	case TokenizerModeNormal:
		return "Normal (segment as written)"
	case TokenizerModeSearch:
		return "Search (split compound nouns)"
	case TokenizerModeExtended:
		return "Extended (search + split unknown words)"
	default:
		return unknownDescription
	}
}

// DictionaryBackend identifies where lookups are answered.
type DictionaryBackend string

// Available dictionary backends.
const (
	// DictionaryBackendJisho queries the Jisho HTTP API.
	DictionaryBackendJisho DictionaryBackend = "jisho"

	// DictionaryBackendSQLite reads an imported offline dictionary.
	DictionaryBackendSQLite DictionaryBackend = "sqlite"

	// DictionaryBackendMemory keeps records in process memory only.
	DictionaryBackendMemory DictionaryBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b DictionaryBackend) IsValid() bool {
	switch b {
	case DictionaryBackendJisho, DictionaryBackendSQLite, DictionaryBackendMemory:
		return true
	default:
		return false
	}
}

// IsRemote returns true if the backend is reached over the network.
func (b DictionaryBackend) IsRemote() bool {
	return b == DictionaryBackendJisho
}

// String returns the string representation.
func (b DictionaryBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b DictionaryBackend) Description() string {
	switch b {
	case DictionaryBackendJisho:
		return "Jisho (online)"
	case DictionaryBackendSQLite:
		return "SQLite (offline, imported)"
	case DictionaryBackendMemory:
		return "Memory (session only)"
	default:
		return unknownDescription
	}
}

// TokenizerSettings configures the tokenizer adapter.
type TokenizerSettings struct {
	Mode TokenizerMode `json:"mode"`
}

// DictionarySettings configures the dictionary backend and lookup fan-out.
type DictionarySettings struct {
	// Backend selects the dictionary adapter.
	Backend DictionaryBackend `json:"backend"`

	// BaseURL overrides the remote endpoint. Empty uses the adapter default.
	BaseURL string `json:"base_url,omitempty"`

	// TimeoutSeconds bounds each remote request.
	TimeoutSeconds int `json:"timeout_seconds"`

	// RequestsPerSecond throttles remote requests.
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Concurrency bounds the number of lookups in flight per pass.
	Concurrency int `json:"concurrency"`
}

// Timeout returns the request timeout as a duration.
func (d DictionarySettings) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// StorageSettings configures on-disk data.
type StorageSettings struct {
	// DataDir holds the offline dictionary database. Empty uses ~/.ankify/data.
	DataDir string `json:"data_dir,omitempty"`
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Tokenizer  TokenizerSettings  `json:"tokenizer"`
	Dictionary DictionarySettings `json:"dictionary"`
	Storage    StorageSettings    `json:"storage"`
}

// Setting keys in their dotted config-file form.
const (
	SettingTokenizerMode      = "tokenizer.mode"
	SettingDictionaryBackend  = "dictionary.backend"
	SettingDictionaryBaseURL  = "dictionary.base_url"
	SettingDictionaryTimeout  = "dictionary.timeout_seconds"
	SettingDictionaryRate     = "dictionary.requests_per_second"
	SettingDictionaryParallel = "dictionary.concurrency"
	SettingStorageDataDir     = "storage.data_dir"
)

// Value returns the string form of the setting stored under key.
func (s AppSettings) Value(key string) (string, bool) {
	switch key {
	case SettingTokenizerMode:
		return s.Tokenizer.Mode.String(), true
	case SettingDictionaryBackend:
		return s.Dictionary.Backend.String(), true
	case SettingDictionaryBaseURL:
		return s.Dictionary.BaseURL, true
	case SettingDictionaryTimeout:
		return strconv.Itoa(s.Dictionary.TimeoutSeconds), true
	case SettingDictionaryRate:
		return strconv.FormatFloat(s.Dictionary.RequestsPerSecond, 'g', -1, 64), true
	case SettingDictionaryParallel:
		return strconv.Itoa(s.Dictionary.Concurrency), true
	case SettingStorageDataDir:
		return s.Storage.DataDir, true
	default:
		return "", false
	}
}

// Validate checks that enum values are recognised and limits are positive.
func (s AppSettings) Validate() error {
	if !s.Tokenizer.Mode.IsValid() {
		return ErrInvalidInput
	}
	if !s.Dictionary.Backend.IsValid() {
		return ErrInvalidInput
	}
	if s.Dictionary.TimeoutSeconds <= 0 || s.Dictionary.Concurrency <= 0 || s.Dictionary.RequestsPerSecond <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Tokenizer: TokenizerSettings{
			Mode: TokenizerModeNormal,
		},
		Dictionary: DictionarySettings{
			Backend:           DictionaryBackendJisho,
			TimeoutSeconds:    10,
			RequestsPerSecond: 5,
			Concurrency:       8,
		},
	}
}

// AllTokenizerModes returns all available tokenizer modes.
func AllTokenizerModes() []TokenizerMode {
	return []TokenizerMode{
		TokenizerModeNormal,
		TokenizerModeSearch,
		TokenizerModeExtended,
	}
}

// AllDictionaryBackends returns all available dictionary backends.
func AllDictionaryBackends() []DictionaryBackend {
	return []DictionaryBackend{
		DictionaryBackendJisho,
		DictionaryBackendSQLite,
		DictionaryBackendMemory,
	}
}
