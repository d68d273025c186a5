package buildversion

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionFormat indicates the raw version does not match
// MAJOR.MINOR.PATCH[-PRERELEASE].
var ErrVersionFormat = errors.New("invalid version format")

// Version is an immutable, parsed version record.
type Version struct {
	prerelease string
	version    string
	major      uint64
	minor      uint64
	patch      uint64
}

// ParseFormat parses raw against the version grammar only, without applying
// any build type policy.
func ParseFormat(raw string) (Version, error) {
	sv, err := semver.StrictNewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %w", ErrVersionFormat, raw, err)
	}

	if sv.Metadata() != "" {
		return Version{}, fmt.Errorf("%w: %q: build metadata is not supported", ErrVersionFormat, raw)
	}

	v := Version{
		major:      sv.Major(),
		minor:      sv.Minor(),
		patch:      sv.Patch(),
		prerelease: sv.Prerelease(),
		version:    raw,
	}

	// Catches dangling separators such as "1.2.3-" or "1.2.3+".
	if v.canonical() != raw {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, raw)
	}

	return v, nil
}

// Parse parses raw and checks it against the [DefaultPolicy] rule for bt.
func Parse(raw string, bt BuildType) (Version, error) {
	return DefaultPolicy().Parse(raw, bt)
}

func (v Version) Major() uint64 {
	return v.major
}

func (v Version) Minor() uint64 {
	return v.minor
}

func (v Version) Patch() uint64 {
	return v.patch
}

// Prerelease returns the prerelease tag and whether one is present.
func (v Version) Prerelease() (string, bool) {
	return v.prerelease, v.prerelease != ""
}

// String returns the canonical version string. This is the exact text written
// into every artifact and searched for during verification.
func (v Version) String() string {
	return v.version
}

func (v Version) canonical() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.prerelease != "" {
		s += "-" + v.prerelease
	}

	return s
}

// IsZero reports whether v is the zero value.
func (v Version) IsZero() bool {
	return v.version == ""
}

// Fields returns the textual value of each version component, keyed by
// component name. The prerelease entry is omitted when absent.
func (v Version) Fields() map[string]string {
	fields := map[string]string{
		"major": strconv.FormatUint(v.major, 10),
		"minor": strconv.FormatUint(v.minor, 10),
		"patch": strconv.FormatUint(v.patch, 10),
	}
	if v.prerelease != "" {
		fields["prerelease"] = v.prerelease
	}

	return fields
}
