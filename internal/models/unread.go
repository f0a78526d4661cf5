package models

import (
	"strconv"
	"strings"
)

// Unread sets are persisted as a delimited id string ("|3|7|12|") so that
// membership can be filtered in SQL with a LIKE pattern on any driver.

func encodeIDSet(ids []uint) string {
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('|')
	for _, id := range ids {
		b.WriteString(strconv.FormatUint(uint64(id), 10))
		b.WriteByte('|')
	}
	return b.String()
}

func decodeIDSet(raw string) []uint {
	raw = strings.Trim(raw, "|")
	if raw == "" {
		return []uint{}
	}
	parts := strings.Split(raw, "|")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parsed, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(parsed))
	}
	return ids
}

func removeID(ids []uint, target uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// UnreadPattern builds the LIKE pattern matching rows whose unread set
// contains the given administrator id.
func UnreadPattern(adminID uint) string {
	return "%|" + strconv.FormatUint(uint64(adminID), 10) + "|%"
}
