package chat

import (
	"fmt"
	"log"

	"github.com/ananya/saathi/internal/db"
)

// IdentityStore owns the single identity record. It layers name
// validation on top of the durable store; every read goes back to the
// database so the value stays correct across restarts and concurrent
// readers.
type IdentityStore struct {
	db *db.DB
}

func NewIdentityStore(database *db.DB) *IdentityStore {
	return &IdentityStore{db: database}
}

// Get returns the persisted identity, or nil when none exists. A stored
// name that is on the current blocklist was persisted by an older, buggier
// extractor; the record is discarded rather than surfaced.
func (s *IdentityStore) Get() (*db.Identity, error) {
	ident, err := s.db.GetIdentity()
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, nil
	}
	if BlockedName(ident.Name) || len(ident.Name) < 2 {
		log.Printf("identity: discarding invalid persisted name %q", ident.Name)
		if err := s.db.ClearIdentity(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return ident, nil
}

// Set validates and persists a name. Returns false without persisting
// when the candidate is blocklisted or too short.
func (s *IdentityStore) Set(name string) (bool, error) {
	if len(name) < 2 || BlockedName(name) {
		return false, nil
	}
	if err := s.db.SetIdentity(Capitalize(name), false); err != nil {
		return false, fmt.Errorf("persisting identity: %w", err)
	}
	return true, nil
}

// MarkGreeted records that the user's name has been used once. The flag
// only ever moves false to true.
func (s *IdentityStore) MarkGreeted() error {
	return s.db.MarkGreeted()
}
