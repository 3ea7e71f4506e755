package crud

import (
	"fmt"
	"unicode/utf8"
)

const labelLimit = 50

// Truncate shortens s to limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func createdMessage(verbose, label string) string {
	return fmt.Sprintf("%s \"%s\" created successfully!", verbose, label)
}

func updatedMessage(verbose, label string) string {
	return fmt.Sprintf("%s \"%s\" updated successfully!", verbose, label)
}

func deletedMessage(label string) string {
	return fmt.Sprintf("\"%s\" deleted successfully!", Truncate(label, labelLimit))
}
