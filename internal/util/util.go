package util

import "fmt"

// Noun picks the singular or plural form for number.
func Noun(number int, one, many string) string {
	if number == 1 || number == -1 {
		return one
	}
	return many
}

// Count formats number with its noun, e.g. "1 card", "3 cards".
func Count(number int, one, many string) string {
	return fmt.Sprintf("%d %s", number, Noun(number, one, many))
}
