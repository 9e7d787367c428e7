// Package cli provides terminal infrastructure for mealmix: prefix
// matching, colored output, tables, and the terminal recipe view.
package cli

import (
	"strconv"
	"strings"
)

// MatchCommand finds a unique command from a prefix.
// Returns the matched command or an error if ambiguous or no match.
func MatchCommand(prefix string, commands []string) (string, error) {
	return Match("command", prefix, commands)
}

// Match finds the unique candidate that equals or starts with input,
// ignoring case. An exact match wins over prefix matches. kind names the
// candidates in errors.
func Match(kind, input string, candidates []string) (string, error) {
	lower := strings.ToLower(input)

	for _, c := range candidates {
		if strings.ToLower(c) == lower {
			return c, nil
		}
	}

	var matches []string
	if lower != "" {
		for _, c := range candidates {
			if strings.HasPrefix(strings.ToLower(c), lower) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Type: kind, ID: input}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Type: kind, Input: input, Matches: matches}
	}
}

// ParseIndex parses a 1-based list index written as "3" or "#3".
func ParseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Resolve picks an entry of list by 1-based index ("#2" or "2") or by
// name as in Match.
func Resolve(kind, input string, list []string) (string, error) {
	input = strings.TrimSpace(input)
	if n, ok := ParseIndex(input); ok {
		if n > len(list) {
			return "", &NotFoundError{Type: kind, ID: "#" + strconv.Itoa(n)}
		}
		return list[n-1], nil
	}
	return Match(kind, input, list)
}
