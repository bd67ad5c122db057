package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// SecretTestRecord carries everything needed to grade one test. It is server-only
// data: the answer key must never reach a response payload, log line, or error
// message. PublicView is the only outward projection.
type SecretTestRecord struct {
	ID          string                    `json:"id"`
	BasePoints  int                       `json:"base_points"`
	Difficulty  int                       `json:"difficulty"`
	MaxAttempts *int                      `json:"max_attempts"`
	AnswerKey   map[string]*CorrectAnswer `json:"answer_key"`
}

// PublicTestInfo is the non-secret subset of a test record.
type PublicTestInfo struct {
	ID          string `json:"id"`
	BasePoints  int    `json:"base_points"`
	Difficulty  int    `json:"difficulty"`
	MaxAttempts *int   `json:"max_attempts,omitempty"`
}

// PublicView returns the caller-safe projection of the record.
func (r SecretTestRecord) PublicView() PublicTestInfo {
	return PublicTestInfo{
		ID:          r.ID,
		BasePoints:  r.BasePoints,
		Difficulty:  r.Difficulty,
		MaxAttempts: r.MaxAttempts,
	}
}

// KeyStore is the process-wide, read-only table of secret test records. It is
// built once at startup and never mutated, so lookups are safe from any number
// of concurrent requests without locking.
type KeyStore struct {
	records map[string]SecretTestRecord
}

type keyFile struct {
	Tests []SecretTestRecord `json:"tests"`
}

// LoadKeyStore reads the versioned answer-key data file and builds the store.
// The file is trusted server data: any malformed record fails the load (and
// with it, startup) rather than degrading silently.
func LoadKeyStore(path string) (*KeyStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answer key file %s: %w", path, err)
	}
	var file keyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse answer key file %s: %w", path, err)
	}

	records := make(map[string]SecretTestRecord, len(file.Tests))
	for _, record := range file.Tests {
		if record.ID == "" {
			return nil, fmt.Errorf("answer key file %s contains a test with no id", path)
		}
		if _, exists := records[record.ID]; exists {
			return nil, fmt.Errorf("duplicate test id %q in answer key file %s", record.ID, path)
		}
		if record.BasePoints <= 0 {
			return nil, fmt.Errorf("test %q must have positive base points", record.ID)
		}
		if record.MaxAttempts != nil && *record.MaxAttempts <= 0 {
			return nil, fmt.Errorf("test %q must have a positive max attempts when set", record.ID)
		}
		records[record.ID] = record
	}
	return &KeyStore{records: records}, nil
}

// NewKeyStore builds a store directly from records. Intended for tests and for
// callers that assemble records programmatically.
func NewKeyStore(records ...SecretTestRecord) *KeyStore {
	store := &KeyStore{records: make(map[string]SecretTestRecord, len(records))}
	for _, record := range records {
		store.records[record.ID] = record
	}
	return store
}

// Get looks up the secret record for a test id.
func (s *KeyStore) Get(testID string) (SecretTestRecord, bool) {
	record, ok := s.records[testID]
	return record, ok
}

// Len reports how many test records are loaded.
func (s *KeyStore) Len() int {
	return len(s.records)
}
