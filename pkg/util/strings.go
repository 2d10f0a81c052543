package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses s as a base-10 int, returning def when s is empty
// or malformed. Surrounding whitespace is tolerated.
func ParseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return def
	}
	return int(v)
}
