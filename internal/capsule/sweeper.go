package capsule

import (
	"fmt"
	"log"
	"time"
)

// Sweep promotes every due, undelivered capsule into the transcript.
//
// Each capsule is claimed with a compare-and-swap on the delivered flag
// before anything else happens, so concurrent sweeps (a timer firing
// while an explicit trigger runs) deliver each capsule exactly once.
// Re-invoking with the same or a later now never double-delivers.
func (s *Service) Sweep(now time.Time) ([]DeliveredCapsule, error) {
	due, err := s.db.DueCapsules(now)
	if err != nil {
		return nil, fmt.Errorf("sweeping capsules: %w", err)
	}

	var delivered []DeliveredCapsule
	for _, c := range due {
		claimed, err := s.db.MarkCapsuleDelivered(c.ID, now)
		if err != nil {
			return delivered, fmt.Errorf("claiming capsule %s: %w", c.ID, err)
		}
		if !claimed {
			// Another sweep got here first.
			continue
		}
		content := fmt.Sprintf("[Time Capsule] %s", c.Message)
		if _, err := s.db.AppendTranscript("assistant", content, "", map[string]any{"capsule_id": c.ID}); err != nil {
			// The claim stands: delivery state is monotonic even when the
			// transcript append fails, so we log rather than roll back.
			log.Printf("capsule: appending delivery for %s: %v", c.ID, err)
			continue
		}
		scheduledAt, _ := time.Parse(time.RFC3339, c.ScheduledAt)
		delivered = append(delivered, DeliveredCapsule{ID: c.ID, Message: c.Message, ScheduledAt: scheduledAt})
	}
	return delivered, nil
}

type DeliveredCapsule struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	ScheduledAt time.Time `json:"scheduled_at"`
}
