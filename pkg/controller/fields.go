package controller

import (
	"errors"
	"regexp"
	"strconv"
)

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// parseField reads the leading integer of a form field, the way a browser's
// parseInt does ("12abc" is 12, "3.9" is 3). Text with no leading integer
// yields def. A number too large for an int saturates to the int bounds so
// range validation still rejects it.
func parseField(raw string, def int) int {
	m := leadingInt.FindStringSubmatch(raw)
	if m == nil {
		return def
	}
	n, err := strconv.Atoi(m[1])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return def
	}
	return n
}
