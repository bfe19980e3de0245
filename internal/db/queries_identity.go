package db

import (
	"database/sql"
	"fmt"
)

// GetIdentity reads the identity record from durable state. Every call
// hits sqlite rather than an in-process cache, so readers observe the
// latest persisted value even across process restarts.
func (d *DB) GetIdentity() (*Identity, error) {
	var ident Identity
	var greeted int
	err := d.conn.QueryRow("SELECT name, greeted FROM identity WHERE id = 1").Scan(&ident.Name, &greeted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting identity: %w", err)
	}
	ident.Greeted = greeted == 1
	return &ident, nil
}

// SetIdentity stores the user's name, replacing any previous record
// along with its greeted flag.
func (d *DB) SetIdentity(name string, greeted bool) error {
	g := 0
	if greeted {
		g = 1
	}
	_, err := d.conn.Exec(
		"INSERT INTO identity (id, name, greeted) VALUES (1, ?, ?) ON CONFLICT(id) DO UPDATE SET name = ?, greeted = ?, updated_at = datetime('now')",
		name, g, name, g,
	)
	if err != nil {
		return fmt.Errorf("setting identity: %w", err)
	}
	return nil
}

// MarkGreeted flips the greeted flag. Monotonic: never set back to 0.
func (d *DB) MarkGreeted() error {
	_, err := d.conn.Exec("UPDATE identity SET greeted = 1, updated_at = datetime('now') WHERE id = 1")
	if err != nil {
		return fmt.Errorf("marking greeted: %w", err)
	}
	return nil
}

// ClearIdentity removes the identity record. Used when a persisted name
// turns out to be invalid under the current blocklist.
func (d *DB) ClearIdentity() error {
	_, err := d.conn.Exec("DELETE FROM identity WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clearing identity: %w", err)
	}
	return nil
}
