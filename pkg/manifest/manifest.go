package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

// DependencySections are the manifest objects searched for dependency
// overrides.
var DependencySections = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
}

// Manifest is an immutable package manifest document. Methods that change
// the document return a new [Manifest].
type Manifest struct {
	data []byte
}

// New validates data as a JSON object and wraps it.
func New(data []byte) (*Manifest, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: manifest is not valid JSON", syncerrors.ErrInvalidFormat)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil, fmt.Errorf("%w: manifest is not a JSON object", syncerrors.ErrInvalidFormat)
	}

	return &Manifest{data: bytes.Clone(data)}, nil
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
	}

	m, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Bytes returns a copy of the document.
func (m *Manifest) Bytes() []byte {
	return bytes.Clone(m.data)
}

// Name returns the top-level "name" field.
func (m *Manifest) Name() (string, error) {
	return m.getString("name")
}

// Version returns the top-level "version" field.
func (m *Manifest) Version() (string, error) {
	return m.getString("version")
}

// Dependency returns the version of a dependency within section.
func (m *Manifest) Dependency(section, name string) (string, bool) {
	v, err := jsonparser.GetString(m.data, section, name)
	if err != nil {
		return "", false
	}

	return v, true
}

// SetVersion returns a copy of m with the top-level "version" field set.
func (m *Manifest) SetVersion(version string) (*Manifest, error) {
	return m.set(version, "version")
}

// ApplyVersions returns a copy of m where, for every override naming a
// package already present in one of [DependencySections], that entry is set
// to the override value. Overrides naming packages that m does not depend on
// are ignored. The applied "section.name" keys are returned in order.
func (m *Manifest) ApplyVersions(overrides map[string]string) (*Manifest, []string, error) {
	out := &Manifest{data: bytes.Clone(m.data)}
	applied := []string{}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, section := range DependencySections {
		for _, name := range names {
			if strings.HasPrefix(name, "[") {
				continue
			}

			_, _, _, err := jsonparser.Get(out.data, section, name)
			if errors.Is(err, jsonparser.KeyPathNotFoundError) {
				continue
			} else if err != nil {
				return nil, nil, fmt.Errorf("%w: read %s.%s: %w", syncerrors.ErrInvalidFormat, section, name, err)
			}

			out, err = out.set(overrides[name], section, name)
			if err != nil {
				return nil, nil, err
			}

			applied = append(applied, section+"."+name)
		}
	}

	return out, applied, nil
}

func (m *Manifest) getString(keys ...string) (string, error) {
	v, err := jsonparser.GetString(m.data, keys...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", syncerrors.ErrInvalidFormat, strings.Join(keys, "."), err)
	}

	return v, nil
}

func (m *Manifest) set(value string, keys ...string) (*Manifest, error) {
	encoded, err := encodeString(value)
	if err != nil {
		return nil, err
	}

	data, err := jsonparser.Set(bytes.Clone(m.data), encoded, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: set %s: %w", syncerrors.ErrInvalidFormat, strings.Join(keys, "."), err)
	}

	return &Manifest{data: data}, nil
}

// encodeString encodes s as a JSON string without HTML escaping, so ranges
// like ">=1.0.0" stay readable.
func encodeString(s string) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrJSONMarshal, err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
