package db

import (
	"database/sql"
	"fmt"
)

// CreatePlannerItem stores a planner to-do and returns its ID.
func (d *DB) CreatePlannerItem(title, date, timeOfDay, notes string) (int64, error) {
	res, err := d.conn.Exec(
		"INSERT INTO planner_items (title, date, time, notes) VALUES (?, ?, ?, ?)",
		title, date, timeOfDay, notes,
	)
	if err != nil {
		return 0, fmt.Errorf("creating planner item: %w", err)
	}
	return res.LastInsertId()
}

// ListPlannerItems returns all planner items in creation order.
func (d *DB) ListPlannerItems() ([]PlannerItem, error) {
	rows, err := d.conn.Query(
		"SELECT id, title, date, time, notes, completed, created_at FROM planner_items ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing planner items: %w", err)
	}
	defer rows.Close()
	return scanPlannerItems(rows)
}

// CompletePlannerItem marks an item completed. Returns false for an
// unknown id.
func (d *DB) CompletePlannerItem(id int64) (bool, error) {
	res, err := d.conn.Exec("UPDATE planner_items SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("completing planner item %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// DeletePlannerItem removes an item. Returns false for an unknown id.
func (d *DB) DeletePlannerItem(id int64) (bool, error) {
	res, err := d.conn.Exec("DELETE FROM planner_items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting planner item %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func scanPlannerItems(rows *sql.Rows) ([]PlannerItem, error) {
	var out []PlannerItem
	for rows.Next() {
		var p PlannerItem
		var completed int
		if err := rows.Scan(&p.ID, &p.Title, &p.Date, &p.Time, &p.Notes, &completed, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning planner item: %w", err)
		}
		p.Completed = completed == 1
		out = append(out, p)
	}
	return out, rows.Err()
}
