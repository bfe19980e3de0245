// Package capsule implements time capsules: user-authored messages
// scheduled for future delivery into the conversation transcript.
package capsule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ananya/saathi/internal/db"
)

// ErrNotFound is returned for an unknown capsule id, and for updates to a
// capsule that has already been delivered.
var ErrNotFound = fmt.Errorf("capsule not found")

// ValidationError describes rejected input on create or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// scheduledAtLayouts are the accepted forms, tried in order. A date-only
// value means midnight UTC.
var scheduledAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type Service struct {
	db *db.DB
}

func NewService(database *db.DB) *Service {
	return &Service{db: database}
}

// Create validates and stores a new capsule.
func (s *Service) Create(message, scheduledAt string) (*db.Capsule, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	when, err := ParseScheduledAt(scheduledAt)
	if err != nil {
		return nil, err
	}
	c, err := s.db.CreateCapsule(uuid.NewString(), message, when)
	if err != nil {
		return nil, fmt.Errorf("storing capsule: %w", err)
	}
	return c, nil
}

// UpdateFields carries the editable capsule fields; nil means unchanged.
type UpdateFields struct {
	Message     *string
	ScheduledAt *string
}

// Update edits an undelivered capsule. Delivered capsules are immutable
// except through the sweeper and report ErrNotFound.
func (s *Service) Update(id string, fields UpdateFields) (*db.Capsule, error) {
	set := map[string]any{}
	if fields.Message != nil {
		if strings.TrimSpace(*fields.Message) == "" {
			return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
		}
		set["message"] = *fields.Message
	}
	if fields.ScheduledAt != nil {
		when, err := ParseScheduledAt(*fields.ScheduledAt)
		if err != nil {
			return nil, err
		}
		set["scheduled_at"] = when.UTC().Format(time.RFC3339)
	}

	ok, err := s.db.UpdateCapsule(id, set)
	if err != nil {
		return nil, fmt.Errorf("updating capsule: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.db.GetCapsule(id)
}

// Delete removes a capsule regardless of delivery state.
func (s *Service) Delete(id string) error {
	ok, err := s.db.DeleteCapsule(id)
	if err != nil {
		return fmt.Errorf("deleting capsule: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// List returns capsules, all of them or only the pending ones.
func (s *Service) List(pendingOnly bool) ([]db.Capsule, error) {
	return s.db.ListCapsules(pendingOnly)
}

// ParseScheduledAt parses an ISO date or date-time and normalizes it to
// UTC. Layouts without a zone are read as UTC.
func ParseScheduledAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &ValidationError{Field: "scheduled_at", Reason: "must not be empty"}
	}
	for _, layout := range scheduledAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "scheduled_at", Reason: "not an ISO date or date-time"}
}
