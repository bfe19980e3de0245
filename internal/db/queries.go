package db

// Row types shared across the query files. Timestamps are stored as
// RFC 3339 UTC text so that lexicographic comparison in SQL matches
// chronological order.

type Identity struct {
	Name    string `json:"name"`
	Greeted bool   `json:"greeted"`
}

type TranscriptEntry struct {
	ID        int64          `json:"id"`
	Role      string         `json:"role"` // system, user, assistant
	Content   string         `json:"content"`
	Name      string         `json:"name,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at"`
}

type Capsule struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Delivered   bool   `json:"delivered"`
	DeliveredAt string `json:"delivered_at,omitempty"`
}

type PlannerItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
