package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/versionsync/pkg/buildversion"
	"github.com/MacroPower/versionsync/pkg/config"
	"github.com/MacroPower/versionsync/pkg/paths"
	"github.com/MacroPower/versionsync/pkg/render"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Targets, 7)
	assert.Equal(t, []string{
		"package.json",
		"ReactAndroid/gradle.properties",
		"template/package.json",
	}, c.Verify)

	for _, f := range render.Formats {
		_, ok := c.Target(f)
		assert.True(t, ok, "default config has a %s target", f)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]func(*config.Config){
		"no targets": func(c *config.Config) {
			c.Targets = nil
			c.Verify = nil
		},
		"empty path": func(c *config.Config) {
			c.Targets[0].Path = ""
		},
		"duplicate path": func(c *config.Config) {
			c.Targets[1].Path = c.Targets[0].Path
		},
		"unknown format": func(c *config.Config) {
			c.Targets[0].Format = "kotlin"
		},
		"template on manifest": func(c *config.Config) {
			c.Targets[4].Template = "x.tmpl"
		},
		"verify unknown path": func(c *config.Config) {
			c.Verify = append(c.Verify, "CHANGELOG.md")
		},
		"verify duplicate": func(c *config.Config) {
			c.Verify = append(c.Verify, "package.json")
		},
		"two manifests": func(c *config.Config) {
			c.Targets = append(c.Targets, config.Target{Path: "other/package.json", Format: render.FormatManifest})
		},
		"template manifest without self package": func(c *config.Config) {
			c.Targets = []config.Target{{Path: "template/package.json", Format: render.FormatTemplateManifest}}
			c.Verify = nil
		},
		"bad policy": func(c *config.Config) {
			c.Policy[buildversion.BuildTypeRelease] = buildversion.Rule{Prerelease: "never"}
		},
	}

	for name, mutate := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := config.Default()
			mutate(c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), paths.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
snapshotDir: /tmp/snapshots
targets:
  - path: src/Version.java
    format: java
    template: templates/Version.java.tmpl
  - path: package.json
    format: manifest
  - path: gradle.properties
    format: properties
    key: APP_VERSION
verify:
  - package.json
  - gradle.properties
policy:
  release:
    prerelease: forbidden
`), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/snapshots", c.SnapshotDir)
	require.Len(t, c.Targets, 3)
	assert.Equal(t, render.FormatJava, c.Targets[0].Format)
	assert.Equal(t, "templates/Version.java.tmpl", c.Targets[0].Template)
	assert.Equal(t, "APP_VERSION", c.Targets[2].Key)
	assert.Equal(t, []string{"package.json", "gradle.properties"}, c.Verify)

	assert.Equal(t, buildversion.PrereleaseForbidden, c.Policy[buildversion.BuildTypeRelease].Prerelease)
	assert.Equal(t, buildversion.DefaultPolicy()[buildversion.BuildTypeNightly], c.Policy[buildversion.BuildTypeNightly])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, syncerrors.ErrReadFile)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("tragets: []\n"), 0o600))

	_, err = config.Load(unknown)
	require.ErrorIs(t, err, syncerrors.ErrInvalidFormat)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("verify: [CHANGELOG.md]\n"), 0o600))

	_, err = config.Load(invalid)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	c, err := config.LoadProject(root)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	require.NoError(t, os.WriteFile(filepath.Join(root, paths.ConfigFileName), []byte("snapshotDir: snaps\n"), 0o600))

	c, err = config.LoadProject(root)
	require.NoError(t, err)
	assert.Equal(t, "snaps", c.SnapshotDir)
	assert.Equal(t, config.Default().Targets, c.Targets)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), paths.ConfigFileName)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestYAML(t *testing.T) {
	t.Parallel()

	b, err := config.Default().YAML()
	require.NoError(t, err)
	assert.Contains(t, string(b), "path: ReactAndroid/gradle.properties")
	assert.Contains(t, string(b), "key: VERSION_NAME")
	assert.Contains(t, string(b), "prerelease: required")
}

func TestSchema(t *testing.T) {
	t.Parallel()

	b, err := config.Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(b, &schema))
	assert.Contains(t, string(b), "template-manifest")
	assert.Contains(t, string(b), "snapshotDir")
}
