package autocomplete

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexOutOfRange is returned when a picked row does not exist in the
// current result set. It means the view and the coordinator disagree.
var ErrIndexOutOfRange = errors.New("autocomplete: index out of range")

// Resolve reports the single result that term identifies exactly.
// More or fewer than one result never resolves, whatever the term.
func Resolve[T any](term string, results []T, stringify func(T) string) (T, bool) {
	var zero T
	if len(results) != 1 {
		return zero, false
	}
	if stringify(results[0]) != term {
		return zero, false
	}
	return results[0], true
}

// Labels stringifies results for display, preserving order
func Labels[T any](results []T, stringify func(T) string) []string {
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = stringify(r)
	}
	return labels
}

// ListVisible reports whether the result list is worth showing
func ListVisible[T any](term string, results []T, stringify func(T) string) bool {
	if isBlank(term) {
		return false
	}
	_, matched := Resolve(term, results, stringify)
	return !matched
}

// SelectTerm returns the text a pick of results[index] feeds back into the
// search field.
func SelectTerm[T any](index int, results []T, stringify func(T) string) (string, error) {
	if index < 0 || index >= len(results) {
		return "", fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(results))
	}
	return stringify(results[index]), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
