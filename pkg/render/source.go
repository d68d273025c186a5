package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MacroPower/versionsync/pkg/buildversion"
)

// Renderer renders a version into the text of one artifact.
type Renderer interface {
	Render(template string, v buildversion.Version) (string, error)
}

// Literals describes how a language spells the values of a version.
type Literals struct {
	// Number renders a numeric component.
	Number func(n uint64) string
	// String renders a string value.
	String func(s string) string
	// Null is substituted for an absent prerelease.
	Null string
}

var (
	JavaLiterals = Literals{
		Number: formatNumber,
		String: strconv.Quote,
		Null:   "null",
	}
	ObjCLiterals = Literals{
		Number: func(n uint64) string { return "@(" + formatNumber(n) + ")" },
		String: func(s string) string { return "@" + strconv.Quote(s) },
		Null:   "[NSNull null]",
	}
	CppLiterals = Literals{
		Number: formatNumber,
		String: strconv.Quote,
		Null:   `""`,
	}
	JSLiterals = Literals{
		Number: formatNumber,
		String: singleQuote,
		Null:   "null",
	}
)

// SourceRenderer renders source constant files from templates.
type SourceRenderer struct {
	Literals Literals
	Format   Format
}

// NewSourceRenderer returns the [SourceRenderer] for a source [Format].
func NewSourceRenderer(f Format) (*SourceRenderer, error) {
	var lit Literals

	switch f {
	case FormatJava:
		lit = JavaLiterals
	case FormatObjC:
		lit = ObjCLiterals
	case FormatCpp:
		lit = CppLiterals
	case FormatJS:
		lit = JSLiterals
	default:
		return nil, fmt.Errorf("%w: %q is not a source format", ErrUnsupportedFormat, string(f))
	}

	return &SourceRenderer{Format: f, Literals: lit}, nil
}

// Values returns the literal substituted for each placeholder.
func (r *SourceRenderer) Values(v buildversion.Version) map[string]string {
	pre := r.Literals.Null
	if p, ok := v.Prerelease(); ok {
		pre = r.Literals.String(p)
	}

	return map[string]string{
		"major":      r.Literals.Number(v.Major()),
		"minor":      r.Literals.Number(v.Minor()),
		"patch":      r.Literals.Number(v.Patch()),
		"prerelease": pre,
		"version":    r.Literals.String(v.String()),
	}
}

// Render substitutes v into template.
func (r *SourceRenderer) Render(template string, v buildversion.Version) (string, error) {
	sub, err := Substitute(template, r.Values(v))
	if err != nil {
		return "", fmt.Errorf("render %s template: %w", r.Format, err)
	}

	slog.Debug("rendered template",
		slog.String("format", string(r.Format)),
		slog.Any("replaced", sub.Replaced),
	)

	return sub.Output, nil
}

func formatNumber(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

	return "'" + r.Replace(s) + "'"
}
