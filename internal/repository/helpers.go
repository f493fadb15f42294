package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nullableClock stores an optional clock as minutes or SQL NULL.
func nullableClock(c *domain.Clock) any {
	if c == nil {
		return nil
	}
	return int(*c)
}

func clockFromNull(v sql.NullInt64) *domain.Clock {
	if !v.Valid {
		return nil
	}
	c := domain.Clock(v.Int64)
	return &c
}

// encodeStrings stores a string list as a JSON array; nil becomes "[]".
func encodeStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	var out []string
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// storedCategory maps unknown categories to normal, matching how the
// allocator weighs them.
func storedCategory(c domain.Category) string {
	if domain.ValidCategories[string(c)] {
		return string(c)
	}
	return string(domain.CategoryNormal)
}
