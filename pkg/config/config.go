package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MacroPower/versionsync/pkg/buildversion"
	"github.com/MacroPower/versionsync/pkg/render"
)

// ErrInvalidConfig indicates the configuration is inconsistent.
var ErrInvalidConfig = errors.New("invalid config")

// Target is a single versioned artifact.
type Target struct {
	// Path is relative to the project root.
	Path string `json:"path" yaml:"path"`
	// Format selects the renderer.
	Format render.Format `json:"format" yaml:"format" jsonschema:"enum=java,enum=objc,enum=cpp,enum=js,enum=properties,enum=manifest,enum=template-manifest"`
	// Template is a project-relative template file for source formats. The
	// built-in template is used when empty.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	// Key is the properties key holding the version (properties only).
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// SelfPackage names the library in the template manifest's version map
	// (template-manifest only). Defaults to the library manifest's name.
	SelfPackage string `json:"selfPackage,omitempty" yaml:"selfPackage,omitempty"`
	// Command delegates the template manifest update to an external process
	// (template-manifest only). The version map is appended as a JSON
	// argument.
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
}

// Config is the versionsync project configuration.
type Config struct {
	// Policy holds the acceptance rule of each build type.
	Policy buildversion.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
	// SnapshotDir is the parent of per-run snapshot directories. The system
	// temporary directory is used when empty.
	SnapshotDir string `json:"snapshotDir,omitempty" yaml:"snapshotDir,omitempty"`
	// Targets are rendered in order.
	Targets []Target `json:"targets" yaml:"targets"`
	// Verify lists the target paths snapshotted and checked after writing.
	Verify []string `json:"verify" yaml:"verify"`
}

// Default returns the built-in configuration, laid out like the
// react-native package.
func Default() *Config {
	return &Config{
		Policy: buildversion.DefaultPolicy(),
		Targets: []Target{
			{
				Path:   "ReactAndroid/src/main/java/com/facebook/react/modules/systeminfo/ReactNativeVersion.java",
				Format: render.FormatJava,
			},
			{
				Path:   "React/Base/RCTVersion.m",
				Format: render.FormatObjC,
			},
			{
				Path:   "ReactCommon/cxxreact/ReactNativeVersion.h",
				Format: render.FormatCpp,
			},
			{
				Path:   "Libraries/Core/ReactNativeVersion.js",
				Format: render.FormatJS,
			},
			{
				Path:   "package.json",
				Format: render.FormatManifest,
			},
			{
				Path:   "template/package.json",
				Format: render.FormatTemplateManifest,
			},
			{
				Path:   "ReactAndroid/gradle.properties",
				Format: render.FormatProperties,
				Key:    render.DefaultPropertiesKey,
			},
		},
		Verify: []string{
			"package.json",
			"ReactAndroid/gradle.properties",
			"template/package.json",
		},
	}
}

// Validate checks targets, the verification subset and the policy.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrInvalidConfig)
	}

	seen := map[string]bool{}
	manifests := 0

	for i, t := range c.Targets {
		if t.Path == "" {
			return fmt.Errorf("%w: targets[%d]: empty path", ErrInvalidConfig, i)
		}

		if seen[t.Path] {
			return fmt.Errorf("%w: targets[%d]: duplicate path %q", ErrInvalidConfig, i, t.Path)
		}

		seen[t.Path] = true

		if err := t.Format.Validate(); err != nil {
			return fmt.Errorf("%w: targets[%d]: %w", ErrInvalidConfig, i, err)
		}

		if t.Template != "" && !t.Format.IsSource() {
			return fmt.Errorf("%w: targets[%d]: template is only valid for source formats", ErrInvalidConfig, i)
		}

		if t.Format == render.FormatManifest {
			manifests++
		}
	}

	if manifests > 1 {
		return fmt.Errorf("%w: at most one %s target is allowed", ErrInvalidConfig, render.FormatManifest)
	}

	for _, t := range c.Targets {
		if t.Format == render.FormatTemplateManifest && t.SelfPackage == "" && manifests == 0 {
			return fmt.Errorf("%w: %s target %q needs selfPackage when there is no %s target",
				ErrInvalidConfig, t.Format, t.Path, render.FormatManifest)
		}
	}

	for _, p := range c.Verify {
		if !seen[p] {
			return fmt.Errorf("%w: verify path %q is not a target", ErrInvalidConfig, p)
		}
	}

	if len(dedup(c.Verify)) != len(c.Verify) {
		return fmt.Errorf("%w: verify paths must be unique", ErrInvalidConfig)
	}

	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Target returns the first target with the given format.
func (c *Config) Target(f render.Format) (Target, bool) {
	for _, t := range c.Targets {
		if t.Format == f {
			return t, true
		}
	}

	return Target{}, false
}

func dedup(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)

	return slices.Compact(out)
}
