package database

import (
	"strconv"
	"time"
)

// Scalar accessors for Row values. The two engines hand back different
// native shapes for the same logical column: MySQL integers arrive as int64
// over the binary protocol but as text for statements sent without
// placeholders (scanRows flattens those []byte values to string), SQLite may
// produce int64 or float64 for numeric affinities, and DATETIME scans as
// time.Time under MySQL's parseTime but as stored text under SQLite.

func (r Row) Int64(col string) int64 {
	switch n := r[col].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		if v, err := strconv.ParseInt(n, 10, 64); err == nil {
			return v
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func (r Row) String(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

func (r Row) Time(col string) time.Time {
	switch t := r[col].(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
