package buildversion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBuildType indicates the build type is not one of [BuildTypes].
var ErrInvalidBuildType = errors.New("invalid build type")

// BuildType classifies a build and controls which version shapes it accepts.
type BuildType string

const (
	BuildTypeDryRun  BuildType = "dry-run"
	BuildTypeNightly BuildType = "nightly"
	BuildTypeRelease BuildType = "release"
)

// BuildTypes lists every valid [BuildType].
var BuildTypes = []BuildType{BuildTypeDryRun, BuildTypeNightly, BuildTypeRelease}

// ParseBuildType converts s to a [BuildType]. It fails with
// [ErrInvalidBuildType] if s is not a known build type.
func ParseBuildType(s string) (BuildType, error) {
	bt := BuildType(s)

	err := bt.Validate()
	if err != nil {
		return "", err
	}

	return bt, nil
}

// Validate returns [ErrInvalidBuildType] if bt is not one of [BuildTypes].
func (bt BuildType) Validate() error {
	for _, known := range BuildTypes {
		if bt == known {
			return nil
		}
	}

	return fmt.Errorf("%w: %q, must be one of: %s", ErrInvalidBuildType, string(bt), buildTypeList())
}

func (bt BuildType) String() string {
	return string(bt)
}

func buildTypeList() string {
	names := make([]string, 0, len(BuildTypes))
	for _, bt := range BuildTypes {
		names = append(names, string(bt))
	}

	return strings.Join(names, ", ")
}
