package capsule

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ananya/saathi/internal/db"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()
	d, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewService(d), d
}

func TestCreateValidation(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		name        string
		message     string
		scheduledAt string
		wantField   string
	}{
		{"empty message", "", "2030-01-01", "message"},
		{"blank message", "   ", "2030-01-01", "message"},
		{"empty date", "hello future", "", "scheduled_at"},
		{"garbage date", "hello future", "next tuesday", "scheduled_at"},
		{"partial date", "hello future", "2030-13-45", "scheduled_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.message, tt.scheduledAt)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
		})
	}
}

func TestCreateAcceptedFormats(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		input string
		want  string
	}{
		{"2030-01-01", "2030-01-01T00:00:00Z"}, // date-only means midnight UTC
		{"2030-01-01T09:30:00Z", "2030-01-01T09:30:00Z"},
		{"2030-01-01T09:30", "2030-01-01T09:30:00Z"},
		{"2030-01-01T12:00:00+02:00", "2030-01-01T10:00:00Z"}, // normalized to UTC
	}
	for _, tt := range tests {
		c, err := s.Create("see you then", tt.input)
		if err != nil {
			t.Fatalf("Create(%q): %v", tt.input, err)
		}
		if c.ScheduledAt != tt.want {
			t.Errorf("Create(%q) stored %q, want %q", tt.input, c.ScheduledAt, tt.want)
		}
		if c.ID == "" {
			t.Error("expected a generated id")
		}
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s, _ := newTestService(t)

	c, _ := s.Create("original", "2030-01-01")

	msg := "edited"
	updated, err := s.Update(c.ID, UpdateFields{Message: &msg})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Message != "edited" {
		t.Errorf("expected edited message, got %q", updated.Message)
	}

	when := "2031-06-01"
	updated, err = s.Update(c.ID, UpdateFields{ScheduledAt: &when})
	if err != nil {
		t.Fatalf("Update scheduled_at: %v", err)
	}
	if updated.ScheduledAt != "2031-06-01T00:00:00Z" {
		t.Errorf("unexpected scheduled_at %q", updated.ScheduledAt)
	}

	if _, err := s.Update("no-such-id", UpdateFields{Message: &msg}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	bad := ""
	if _, err := s.Update(c.ID, UpdateFields{Message: &bad}); err == nil {
		t.Error("expected validation error for empty message")
	}

	if err := s.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdateRejectedOnceDelivered(t *testing.T) {
	s, d := newTestService(t)

	c, _ := s.Create("sealed", "2024-01-01")
	d.MarkCapsuleDelivered(c.ID, time.Now())

	msg := "tamper"
	if _, err := s.Update(c.ID, UpdateFields{Message: &msg}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for delivered capsule, got %v", err)
	}
}

func TestUpdateWithNoFields(t *testing.T) {
	s, d := newTestService(t)

	if _, err := s.Update("no-such-id", UpdateFields{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}

	c, _ := s.Create("sealed", "2024-01-01")
	d.MarkCapsuleDelivered(c.ID, time.Now())
	if _, err := s.Update(c.ID, UpdateFields{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for delivered capsule, got %v", err)
	}

	// A pending capsule survives a no-op update unchanged.
	p, _ := s.Create("still here", "2030-01-01")
	got, err := s.Update(p.ID, UpdateFields{})
	if err != nil {
		t.Fatalf("no-op update of pending capsule: %v", err)
	}
	if got.Message != "still here" || got.ScheduledAt != p.ScheduledAt {
		t.Errorf("no-op update changed the record: %+v", got)
	}
}

func TestSweepDeliversDueCapsules(t *testing.T) {
	s, d := newTestService(t)

	c, err := s.Create("hello from the past", "2024-01-01")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Create("not yet", "2030-01-01")

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	delivered, err := s.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(delivered) != 1 || delivered[0].ID != c.ID {
		t.Fatalf("expected one delivery, got %+v", delivered)
	}

	entries, _ := d.ListTranscript()
	if len(entries) != 1 {
		t.Fatalf("expected one transcript entry, got %d", len(entries))
	}
	if entries[0].Role != "assistant" {
		t.Errorf("expected assistant entry, got %q", entries[0].Role)
	}
	if !strings.HasPrefix(entries[0].Content, "[Time Capsule] ") {
		t.Errorf("unexpected delivery content: %q", entries[0].Content)
	}
	if entries[0].Metadata["capsule_id"] != c.ID {
		t.Errorf("expected capsule id in metadata, got %v", entries[0].Metadata)
	}

	stored, _ := d.GetCapsule(c.ID)
	if !stored.Delivered || stored.DeliveredAt == "" {
		t.Errorf("capsule not marked delivered: %+v", stored)
	}
}

func TestSweepIdempotent(t *testing.T) {
	s, d := newTestService(t)

	s.Create("once only", "2024-01-01")

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	first, err := s.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one delivery, got %d", len(first))
	}

	// Same now again, then a later now: nothing new either time.
	again, err := s.Sweep(now)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second sweep re-delivered: %+v", again)
	}
	later, _ := s.Sweep(now.Add(24 * time.Hour))
	if len(later) != 0 {
		t.Errorf("later sweep re-delivered: %+v", later)
	}

	entries, _ := d.ListTranscript()
	if len(entries) != 1 {
		t.Errorf("expected exactly one delivery entry, got %d", len(entries))
	}

	caps, _ := s.List(false)
	if len(caps) != 1 || !caps[0].Delivered {
		t.Errorf("delivered flag reverted: %+v", caps)
	}
}

func TestListPendingFilter(t *testing.T) {
	s, _ := newTestService(t)

	s.Create("due", "2024-01-01")
	s.Create("future", "2030-01-01")
	s.Sweep(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	all, _ := s.List(false)
	if len(all) != 2 {
		t.Errorf("expected 2 capsules, got %d", len(all))
	}
	pending, _ := s.List(true)
	if len(pending) != 1 || pending[0].Message != "future" {
		t.Errorf("expected only the future capsule pending, got %+v", pending)
	}
}
