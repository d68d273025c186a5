package render

import (
	"embed"
	"fmt"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultTemplate returns the built-in template for a source [Format].
func DefaultTemplate(f Format) (string, error) {
	if !f.IsSource() {
		return "", fmt.Errorf("%w: no template for %q", ErrUnsupportedFormat, string(f))
	}

	b, err := templateFS.ReadFile("templates/" + string(f) + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("read template for %q: %w", string(f), err)
	}

	return string(b), nil
}
