package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// AppendTranscript appends one conversation entry. The insert is a single
// statement, so concurrent appenders interleave whole entries, never
// partial ones.
func (d *DB) AppendTranscript(role, content, name string, metadata map[string]any) (int64, error) {
	var metaJSON string
	if len(metadata) > 0 {
		b, _ := json.Marshal(metadata)
		metaJSON = string(b)
	}
	res, err := d.conn.Exec(
		"INSERT INTO transcript (role, content, name, metadata) VALUES (?, ?, ?, ?)",
		role, content, nullStr(name), nullStr(metaJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("appending transcript: %w", err)
	}
	return res.LastInsertId()
}

// RecentTranscript returns the last n user/assistant entries in
// conversation order. System and metadata-only rows are excluded from
// the prompt window.
func (d *DB) RecentTranscript(n int) ([]TranscriptEntry, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := d.conn.Query(
		`SELECT id, role, content, COALESCE(name,''), COALESCE(metadata,''), created_at
		 FROM transcript WHERE role IN ('user','assistant')
		 ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("reading recent transcript: %w", err)
	}
	defer rows.Close()
	entries, err := scanTranscript(rows)
	if err != nil {
		return nil, err
	}
	// Reverse: the query walks newest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// ListTranscript returns the whole conversation in order.
func (d *DB) ListTranscript() ([]TranscriptEntry, error) {
	rows, err := d.conn.Query(
		`SELECT id, role, content, COALESCE(name,''), COALESCE(metadata,''), created_at
		 FROM transcript ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transcript: %w", err)
	}
	defer rows.Close()
	return scanTranscript(rows)
}

func scanTranscript(rows *sql.Rows) ([]TranscriptEntry, error) {
	var out []TranscriptEntry
	for rows.Next() {
		var e TranscriptEntry
		var metaJSON string
		if err := rows.Scan(&e.ID, &e.Role, &e.Content, &e.Name, &metaJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript entry: %w", err)
		}
		if metaJSON != "" {
			// Unparseable metadata degrades to none rather than failing the read.
			_ = json.Unmarshal([]byte(metaJSON), &e.Metadata)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
