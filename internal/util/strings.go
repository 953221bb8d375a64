// Package util provides small string helpers shared by the commands.
package util

import (
	"strconv"
	"strings"
)

// JoinOrNone joins strings with ", " or returns "(none)" for an empty list,
// so an empty peer list still prints something.
func JoinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count formats a count with the matching noun, e.g. "1 peer" or "3 peers".
func Count(count int, singular, plural string) string {
	return strconv.Itoa(count) + " " + Pluralize(count, singular, plural)
}
