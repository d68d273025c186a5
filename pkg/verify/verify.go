// Package verify compares artifacts before and after a version change.
package verify

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangedLines returns the lines present in after that a line diff against
// before reports as inserted, in order.
func ChangedLines(before, after string) []string {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	lines := []string{}
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffInsert {
			continue
		}

		lines = append(lines, strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")...)
	}

	return lines
}

// CountMatchingChangedLines counts the changed lines between before and after
// that contain needle.
func CountMatchingChangedLines(before, after, needle string) int {
	n := 0
	for _, line := range ChangedLines(before, after) {
		if strings.Contains(line, needle) {
			n++
		}
	}

	return n
}

// Unified returns a unified diff of before and after labelled with path, or
// an empty string when they are equal.
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}

	return udiff.Unified("a/"+path, "b/"+path, before, after)
}
