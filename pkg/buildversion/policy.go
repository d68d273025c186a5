package buildversion

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBuildTypeMismatch indicates a well-formed version violates the policy of
// its build type.
var ErrBuildTypeMismatch = errors.New("version does not match build type")

// ErrInvalidPolicy indicates a policy rule is malformed.
var ErrInvalidPolicy = errors.New("invalid policy")

// PrereleaseRule states whether a build type accepts a prerelease tag.
type PrereleaseRule string

const (
	PrereleaseForbidden PrereleaseRule = "forbidden"
	PrereleaseOptional  PrereleaseRule = "optional"
	PrereleaseRequired  PrereleaseRule = "required"
)

// Rule is the acceptance rule of a single build type.
type Rule struct {
	// Prerelease states whether a prerelease tag is accepted.
	Prerelease PrereleaseRule `json:"prerelease" yaml:"prerelease" jsonschema:"enum=forbidden,enum=optional,enum=required"`
	// Pattern, if set, must match the whole prerelease tag when one is present.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Policy maps every [BuildType] to its [Rule].
type Policy map[BuildType]Rule

// DefaultPolicy returns the built-in rules:
//
//   - dry-run: any prerelease, or none.
//   - nightly: prerelease required, shaped like nightly-YYYYMMDD-<commit>.
//   - release: no prerelease, or a release candidate tag rc.N.
func DefaultPolicy() Policy {
	return Policy{
		BuildTypeDryRun: {
			Prerelease: PrereleaseOptional,
		},
		BuildTypeNightly: {
			Prerelease: PrereleaseRequired,
			Pattern:    `^nightly-\d{8}-[0-9a-f]{7,40}$`,
		},
		BuildTypeRelease: {
			Prerelease: PrereleaseOptional,
			Pattern:    `^rc\.\d+$`,
		},
	}
}

// Validate checks that every build type has a well-formed rule.
func (p Policy) Validate() error {
	for _, bt := range BuildTypes {
		r, ok := p[bt]
		if !ok {
			return fmt.Errorf("%w: no rule for build type %q", ErrInvalidPolicy, bt)
		}

		if err := r.validate(); err != nil {
			return fmt.Errorf("%w: build type %q: %w", ErrInvalidPolicy, bt, err)
		}
	}

	return nil
}

// Parse validates bt, parses raw and checks the result against the rule for
// bt. Errors match [ErrInvalidBuildType], [ErrVersionFormat] or
// [ErrBuildTypeMismatch].
func (p Policy) Parse(raw string, bt BuildType) (Version, error) {
	if err := bt.Validate(); err != nil {
		return Version{}, err
	}

	v, err := ParseFormat(raw)
	if err != nil {
		return Version{}, err
	}

	r, ok := p[bt]
	if !ok {
		return Version{}, fmt.Errorf("%w: no rule for build type %q", ErrInvalidPolicy, bt)
	}

	if err := r.Check(v); err != nil {
		return Version{}, fmt.Errorf("%w: %q is not valid for %s: %w", ErrBuildTypeMismatch, raw, bt, err)
	}

	return v, nil
}

// Check returns an error describing why v violates r, or nil.
func (r Rule) Check(v Version) error {
	pre, ok := v.Prerelease()

	switch r.Prerelease {
	case PrereleaseForbidden:
		if ok {
			return fmt.Errorf("prerelease %q is not allowed", pre)
		}

		return nil
	case PrereleaseRequired:
		if !ok {
			return errors.New("a prerelease is required")
		}
	case PrereleaseOptional:
		if !ok {
			return nil
		}
	default:
		return fmt.Errorf("unknown prerelease rule %q", r.Prerelease)
	}

	if r.Pattern == "" {
		return nil
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}

	if !re.MatchString(pre) {
		return fmt.Errorf("prerelease %q does not match %s", pre, r.Pattern)
	}

	return nil
}

func (r Rule) validate() error {
	switch r.Prerelease {
	case PrereleaseForbidden, PrereleaseOptional, PrereleaseRequired:
	default:
		return fmt.Errorf("unknown prerelease rule %q", r.Prerelease)
	}

	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("compile pattern: %w", err)
		}
	}

	return nil
}
