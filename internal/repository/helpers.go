package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
)

// maxVarsPerQuery keeps IN lists below SQLite's host parameter limit.
const maxVarsPerQuery = 500

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableDateToString(d *calendar.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullableDate(s sql.NullString) *calendar.Date {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := calendar.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &d
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// chunk splits ids into slices of at most size elements.
func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
