package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const capsuleCols = "id, message, scheduled_at, created_at, delivered, COALESCE(delivered_at,'')"

// CreateCapsule inserts a new scheduled message. scheduledAt must already
// be normalized to UTC by the caller.
func (d *DB) CreateCapsule(id, message string, scheduledAt time.Time) (*Capsule, error) {
	_, err := d.conn.Exec(
		"INSERT INTO time_capsules (id, message, scheduled_at) VALUES (?, ?, ?)",
		id, message, scheduledAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("creating capsule: %w", err)
	}
	return d.GetCapsule(id)
}

// GetCapsule returns one capsule, or nil if the id is unknown.
func (d *DB) GetCapsule(id string) (*Capsule, error) {
	row := d.conn.QueryRow("SELECT "+capsuleCols+" FROM time_capsules WHERE id = ?", id)
	c, err := scanCapsule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting capsule: %w", err)
	}
	return c, nil
}

var capsuleColumns = map[string]bool{"message": true, "scheduled_at": true}

// UpdateCapsule updates fields on an undelivered capsule. A delivered
// capsule is immutable except through the sweeper, so the update is
// guarded on delivered = 0 and reports not-found when no row changed.
func (d *DB) UpdateCapsule(id string, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		// Nothing to change, but the row must still exist and be
		// undelivered for the update to count as found.
		res, err := d.conn.Exec("UPDATE time_capsules SET id = id WHERE id = ? AND delivered = 0", id)
		if err != nil {
			return false, fmt.Errorf("updating capsule %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("updating capsule %s: %w", id, err)
		}
		return n == 1, nil
	}
	var setClauses []string
	var args []any
	for col, val := range fields {
		if !capsuleColumns[col] {
			return false, fmt.Errorf("disallowed column %q for time_capsules", col)
		}
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE time_capsules SET %s WHERE id = ? AND delivered = 0", strings.Join(setClauses, ", "))
	res, err := d.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("updating capsule %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// DeleteCapsule removes a capsule regardless of delivery state. Returns
// false when the id is unknown.
func (d *DB) DeleteCapsule(id string) (bool, error) {
	res, err := d.conn.Exec("DELETE FROM time_capsules WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting capsule: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// ListCapsules returns capsules ordered by scheduled time, optionally
// only the undelivered ones.
func (d *DB) ListCapsules(pendingOnly bool) ([]Capsule, error) {
	q := "SELECT " + capsuleCols + " FROM time_capsules"
	if pendingOnly {
		q += " WHERE delivered = 0"
	}
	q += " ORDER BY scheduled_at ASC"
	rows, err := d.conn.Query(q)
	if err != nil {
		return nil, fmt.Errorf("listing capsules: %w", err)
	}
	defer rows.Close()
	return scanCapsules(rows)
}

// DueCapsules returns undelivered capsules whose scheduled time is at or
// before now.
func (d *DB) DueCapsules(now time.Time) ([]Capsule, error) {
	rows, err := d.conn.Query(
		"SELECT "+capsuleCols+" FROM time_capsules WHERE delivered = 0 AND scheduled_at <= ? ORDER BY scheduled_at ASC",
		now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing due capsules: %w", err)
	}
	defer rows.Close()
	return scanCapsules(rows)
}

// MarkCapsuleDelivered claims a capsule for delivery. The guard on
// delivered = 0 makes the transition a compare-and-swap: exactly one of
// any number of concurrent sweeps sees true for a given capsule.
func (d *DB) MarkCapsuleDelivered(id string, now time.Time) (bool, error) {
	res, err := d.conn.Exec(
		"UPDATE time_capsules SET delivered = 1, delivered_at = ? WHERE id = ? AND delivered = 0",
		now.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return false, fmt.Errorf("marking capsule delivered: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapsule(row rowScanner) (*Capsule, error) {
	var c Capsule
	var delivered int
	if err := row.Scan(&c.ID, &c.Message, &c.ScheduledAt, &c.CreatedAt, &delivered, &c.DeliveredAt); err != nil {
		return nil, err
	}
	c.Delivered = delivered == 1
	return &c, nil
}

func scanCapsules(rows *sql.Rows) ([]Capsule, error) {
	var out []Capsule
	for rows.Next() {
		c, err := scanCapsule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning capsule: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
