package render

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrUnknownPlaceholder indicates a template references a placeholder
	// that has no value.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrUnreplacedPlaceholder indicates rendered output still contains a
	// placeholder token.
	ErrUnreplacedPlaceholder = errors.New("unreplaced placeholder")
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Substitution is the result of rendering a template.
type Substitution struct {
	Output string
	// Replaced counts the substituted occurrences of each placeholder.
	Replaced map[string]int
}

// Substitute replaces every ${name} token in tmpl with values[name]. The scan
// happens once over tmpl, so substituted text is never rescanned and each
// token is replaced exactly once. Tokens without a value are collected into an
// error matching [ErrUnknownPlaceholder].
func Substitute(tmpl string, values map[string]string) (*Substitution, error) {
	var merr error

	replaced := map[string]int{}
	unknown := map[string]bool{}

	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]

		value, ok := values[name]
		if !ok {
			if !unknown[name] {
				unknown[name] = true
				merr = multierror.Append(merr, fmt.Errorf("%w: %s", ErrUnknownPlaceholder, token))
			}

			return token
		}

		replaced[name]++

		return value
	})
	if merr != nil {
		return nil, merr
	}

	if left := Placeholders(out); len(left) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnreplacedPlaceholder, left)
	}

	return &Substitution{Output: out, Replaced: replaced}, nil
}

// Placeholders returns the sorted, distinct placeholder names found in s.
func Placeholders(s string) []string {
	names := []string{}
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}

	slices.Sort(names)

	return names
}
