package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive surrogate key from a path or form value. Keys
// are bigint columns, so anything above MaxInt64 is rejected.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 63)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// ParseIDs parses every non-empty value, skipping anything that is not an id.
func ParseIDs(values []string) []uint {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if id, ok := ParseID(v); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
