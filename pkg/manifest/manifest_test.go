package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/versionsync/pkg/manifest"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

const libraryManifest = `{
  "name": "react-native",
  "version": "1000.0.0",
  "description": "A framework for building native apps using React",
  "dependencies": {
    "@react-native/assets-registry": "0.75.0-main",
    "some-lib": "1.0.0",
    "other-lib": "^3.1.0"
  },
  "devDependencies": {
    "some-lib": "1.0.0",
    "typescript": "5.0.4"
  },
  "peerDependencies": {
    "react": ">=18.2.0"
  }
}
`

func mustNew(t *testing.T, doc string) *manifest.Manifest {
	t.Helper()

	m, err := manifest.New([]byte(doc))
	require.NoError(t, err)

	return m
}

func TestNewRejectsInvalid(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"not json": "{",
		"array":    "[1, 2]",
		"string":   `"x"`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.New([]byte(doc))
			require.ErrorIs(t, err, syncerrors.ErrInvalidFormat)
		})
	}
}

func TestNameAndVersion(t *testing.T) {
	t.Parallel()

	m := mustNew(t, libraryManifest)

	name, err := m.Name()
	require.NoError(t, err)
	assert.Equal(t, "react-native", name)

	version, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, "1000.0.0", version)

	_, err = mustNew(t, `{}`).Version()
	require.ErrorIs(t, err, syncerrors.ErrInvalidFormat)
}

func TestSetVersionPreservesLayout(t *testing.T) {
	t.Parallel()

	m := mustNew(t, libraryManifest)

	updated, err := m.SetVersion("0.75.0")
	require.NoError(t, err)

	want := replaceOnce(t, libraryManifest, `"version": "1000.0.0"`, `"version": "0.75.0"`)
	assert.Equal(t, want, string(updated.Bytes()))

	// The original is untouched.
	version, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, "1000.0.0", version)
}

func TestApplyVersions(t *testing.T) {
	t.Parallel()

	m := mustNew(t, libraryManifest)

	updated, applied, err := m.ApplyVersions(map[string]string{
		"some-lib":    "2.0.0",
		"react":       ">=19.0.0",
		"unknown-lib": "9.9.9",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dependencies.some-lib",
		"devDependencies.some-lib",
		"peerDependencies.react",
	}, applied)

	got, ok := updated.Dependency("dependencies", "some-lib")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", got)

	got, ok = updated.Dependency("devDependencies", "some-lib")
	require.True(t, ok)
	assert.Equal(t, "2.0.0", got)

	got, ok = updated.Dependency("peerDependencies", "react")
	require.True(t, ok)
	assert.Equal(t, ">=19.0.0", got)
	assert.Contains(t, string(updated.Bytes()), `"react": ">=19.0.0"`)

	got, ok = updated.Dependency("dependencies", "other-lib")
	require.True(t, ok)
	assert.Equal(t, "^3.1.0", got)

	_, ok = updated.Dependency("dependencies", "unknown-lib")
	assert.False(t, ok)

	// The input is not mutated.
	got, ok = m.Dependency("dependencies", "some-lib")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", got)
}

func TestApplyVersionsEmpty(t *testing.T) {
	t.Parallel()

	m := mustNew(t, libraryManifest)

	for _, overrides := range []map[string]string{nil, {}} {
		updated, applied, err := m.ApplyVersions(overrides)
		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.Equal(t, libraryManifest, string(updated.Bytes()))
	}
}

func TestFileTemplateUpdater(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "name": "HelloWorld",
  "dependencies": {
    "react": "18.2.0",
    "react-native": "1000.0.0"
  }
}
`), 0o600))

	u := manifest.NewFileTemplateUpdater(path)
	require.NoError(t, u.UpdateTemplatePackage(map[string]string{
		"react-native": "0.75.0",
		"not-present":  "1.0.0",
	}))

	m, err := manifest.Load(path)
	require.NoError(t, err)

	got, ok := m.Dependency("dependencies", "react-native")
	require.True(t, ok)
	assert.Equal(t, "0.75.0", got)

	got, ok = m.Dependency("dependencies", "react")
	require.True(t, ok)
	assert.Equal(t, "18.2.0", got)
}

func TestFileTemplateUpdaterMissingFile(t *testing.T) {
	t.Parallel()

	u := manifest.NewFileTemplateUpdater(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, u.UpdateTemplatePackage(map[string]string{"a": "1"}), syncerrors.ErrReadFile)
}

func TestExecTemplateUpdaterEmptyCommand(t *testing.T) {
	t.Parallel()

	u := manifest.NewExecTemplateUpdater(t.TempDir(), nil)
	require.ErrorIs(t, u.UpdateTemplatePackage(map[string]string{"a": "1"}), syncerrors.ErrInvalidArguments)
}

func TestExecTemplateUpdater(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u := manifest.NewExecTemplateUpdater(dir, []string{"sh", "-c", `printf '%s' "$1" > versions.json`, "sh"})
	require.NoError(t, u.UpdateTemplatePackage(map[string]string{"react-native": "0.75.0", "some-lib": "2.0.0"}))

	got, err := os.ReadFile(filepath.Join(dir, "versions.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"react-native":"0.75.0","some-lib":"2.0.0"}`, string(got))
}

func TestExecTemplateUpdaterFailure(t *testing.T) {
	t.Parallel()

	u := manifest.NewExecTemplateUpdater(t.TempDir(), []string{"sh", "-c", "echo broken >&2; exit 3", "sh"})
	err := u.UpdateTemplatePackage(map[string]string{"a": "1"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken")
}

func replaceOnce(t *testing.T, s, old, repl string) string {
	t.Helper()

	require.Contains(t, s, old)

	return strings.Replace(s, old, repl, 1)
}
