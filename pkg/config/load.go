package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/MacroPower/versionsync/pkg/paths"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

// Load reads the YAML file at path over [Default] and validates the result.
// Lists in the file replace the defaults; policy rules replace the default
// rule of the build types they name.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
	}

	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", syncerrors.ErrInvalidFormat, path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// LoadProject loads root's [paths.ConfigFileName] if it exists, or returns
// [Default] otherwise.
func LoadProject(root string) (*Config, error) {
	path := filepath.Join(root, paths.ConfigFileName)

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no project config found, using defaults", slog.String("root", root))

		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
	}

	slog.Debug("loading project config", slog.String("path", path))

	return Load(path)
}

// YAML renders c as YAML.
func (c *Config) YAML() ([]byte, error) {
	b, err := k8syaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrYAMLMarshal, err)
	}

	return b, nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}

	s := r.Reflect(&Config{})
	s.Title = "versionsync configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrJSONMarshal, err)
	}

	return b, nil
}
