package util

import "strconv"

const MaxLimit = 100

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Window normalizes skip/limit query values: negative skip becomes 0 and a
// limit outside (0, MaxLimit] falls back to def.
func Window(skip, limit, def int) (offset, size int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = def
	}
	return skip, limit
}
