package render

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/magiconair/properties"

	"github.com/MacroPower/versionsync/pkg/buildversion"
)

// ErrPropertiesUpdate indicates the expected KEY= line could not be updated.
var ErrPropertiesUpdate = errors.New("properties update failed")

// DefaultPropertiesKey is the key holding the version in gradle.properties.
const DefaultPropertiesKey = "VERSION_NAME"

// PropertiesRenderer replaces the single line anchored at Key= in a
// build-tool properties file.
type PropertiesRenderer struct {
	Key string
}

// NewPropertiesRenderer returns a [PropertiesRenderer] for key, or for
// [DefaultPropertiesKey] if key is empty.
func NewPropertiesRenderer(key string) *PropertiesRenderer {
	if key == "" {
		key = DefaultPropertiesKey
	}

	return &PropertiesRenderer{Key: key}
}

// Render replaces the Key= line of content with Key=<version>. It fails with
// [ErrPropertiesUpdate] if no such line exists, which signals the file format
// drifted.
func (r *PropertiesRenderer) Render(content string, v buildversion.Version) (string, error) {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(r.Key) + `=[^\r\n]*`)

	if !re.MatchString(content) {
		return "", fmt.Errorf("%w: no line matching %q", ErrPropertiesUpdate, r.Key+"=")
	}

	out := re.ReplaceAllLiteralString(content, r.Key+"="+v.String())

	got, err := ReadProperty(out, r.Key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPropertiesUpdate, err)
	}

	if got != v.String() {
		return "", fmt.Errorf("%w: %s resolves to %q, want %q", ErrPropertiesUpdate, r.Key, got, v.String())
	}

	return out, nil
}

// ReadProperty parses content as a properties file and returns the value of
// key.
func ReadProperty(content, key string) (string, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

	p, err := l.LoadBytes([]byte(content))
	if err != nil {
		return "", fmt.Errorf("parse properties: %w", err)
	}

	value, ok := p.Get(key)
	if !ok {
		return "", fmt.Errorf("key %q not found", key)
	}

	return value, nil
}
