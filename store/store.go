//
// store.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package store defines the narrow persistence interfaces the core
// depends on (spec.md §1/§6: voter store, vote store, partial-
// decryption store), plus an in-memory reference implementation used
// by the package test suites. A real deployment supplies its own
// collaborator behind these interfaces; no database driver is wired
// here because persistence is explicitly out of the core's scope.
package store

import (
	"math/big"
	"sync"

	"github.com/sfevote/yaovote/election"
)

// VoterStore is keyed by voter_id. Registration is idempotent: the
// first signature stored for an id is returned on every subsequent
// registration attempt for the same id (spec.md §4.6, §5).
type VoterStore interface {
	// PutIfAbsent stores sig under id if no row exists yet, and returns
	// the signature now on file for id (either the one just stored, or
	// the one a prior registration already stored).
	PutIfAbsent(id string, sig *big.Int) (*big.Int, error)
	// Get returns the stored signature for id, if any.
	Get(id string) (sig *big.Int, ok bool, err error)
}

// VoteRow is one accepted ballot, verifiable independently of the
// store (spec.md §3).
type VoteRow struct {
	Vote               *election.VoteCiphertext
	ZKP                *election.VoteZKP
	UnblindedSignature *big.Int
	TallyerSignature   []byte
}

// VoteStore is append-only; a verifier reads a fixed snapshot
// (spec.md §5).
type VoteStore interface {
	Append(row VoteRow) error
	Snapshot() ([]VoteRow, error)
}

// PartialDecryptionRow is one arbiter's contribution to decrypting an
// aggregate ciphertext.
type PartialDecryptionRow struct {
	ArbiterID string
	PD        *election.PartialDecryption
	ZKP       *election.DecryptionZKP
}

// PartialDecryptionStore is append-only and keyed by
// (arbiter_id, aggregate_fingerprint) per spec.md §5. The in-memory
// implementation below is a plain append-only list: it keys rows on
// nothing and does not reject a second row from the same arbiter.
type PartialDecryptionStore interface {
	Append(row PartialDecryptionRow) error
	Snapshot() ([]PartialDecryptionRow, error)
}

// MemVoterStore is an in-memory VoterStore guarded by a mutex,
// grounded on the teacher's p2p.Network map-of-peers locking pattern.
type MemVoterStore struct {
	mu   sync.Mutex
	rows map[string]*big.Int
}

// NewMemVoterStore creates an empty in-memory voter store.
func NewMemVoterStore() *MemVoterStore {
	return &MemVoterStore{rows: make(map[string]*big.Int)}
}

// PutIfAbsent implements VoterStore.
func (s *MemVoterStore) PutIfAbsent(id string, sig *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[id]; ok {
		return existing, nil
	}
	s.rows[id] = sig
	return sig, nil
}

// Get implements VoterStore.
func (s *MemVoterStore) Get(id string) (*big.Int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.rows[id]
	return sig, ok, nil
}

// MemVoteStore is an in-memory, append-only VoteStore.
type MemVoteStore struct {
	mu   sync.RWMutex
	rows []VoteRow
}

// NewMemVoteStore creates an empty in-memory vote store.
func NewMemVoteStore() *MemVoteStore {
	return &MemVoteStore{}
}

// Append implements VoteStore.
func (s *MemVoteStore) Append(row VoteRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return nil
}

// Snapshot implements VoteStore, returning a copy of the rows appended
// so far so that a concurrent Append cannot mutate the caller's view.
func (s *MemVoteStore) Snapshot() ([]VoteRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]VoteRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// MemPartialDecryptionStore is an in-memory, append-only
// PartialDecryptionStore.
type MemPartialDecryptionStore struct {
	mu   sync.RWMutex
	rows []PartialDecryptionRow
}

// NewMemPartialDecryptionStore creates an empty in-memory partial
// decryption store.
func NewMemPartialDecryptionStore() *MemPartialDecryptionStore {
	return &MemPartialDecryptionStore{}
}

// Append implements PartialDecryptionStore.
func (s *MemPartialDecryptionStore) Append(row PartialDecryptionRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return nil
}

// Snapshot implements PartialDecryptionStore.
func (s *MemPartialDecryptionStore) Snapshot() ([]PartialDecryptionRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PartialDecryptionRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
