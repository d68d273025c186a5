package render

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a [Format] has no renderer of the requested
// kind.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies the syntax of an artifact.
type Format string

const (
	FormatJava             Format = "java"
	FormatObjC             Format = "objc"
	FormatCpp              Format = "cpp"
	FormatJS               Format = "js"
	FormatProperties       Format = "properties"
	FormatManifest         Format = "manifest"
	FormatTemplateManifest Format = "template-manifest"
)

// Formats lists every known [Format].
var Formats = []Format{
	FormatJava,
	FormatObjC,
	FormatCpp,
	FormatJS,
	FormatProperties,
	FormatManifest,
	FormatTemplateManifest,
}

// IsSource reports whether f is a template-rendered source constant format.
func (f Format) IsSource() bool {
	switch f {
	case FormatJava, FormatObjC, FormatCpp, FormatJS:
		return true
	default:
		return false
	}
}

// Validate returns [ErrUnsupportedFormat] if f is not one of [Formats].
func (f Format) Validate() error {
	for _, known := range Formats {
		if f == known {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}
