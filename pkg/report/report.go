package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"sigs.k8s.io/yaml"

	"github.com/MacroPower/versionsync/pkg/propagate"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

var ErrUnknownOutputFormat = errors.New("unknown output format")

// Format is the encoding of a printed [propagate.Result].
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an output [Format].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOutputFormat, s)
}

type styles struct {
	title lipgloss.Style
	faint lipgloss.Style
	path  lipgloss.Style
	check lipgloss.Style
	cross lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().Bold(true),
		faint: r.NewStyle().Faint(true),
		path:  r.NewStyle().Foreground(lipgloss.Color("211")),
		check: r.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓"),
		cross: r.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗"),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Printer writes results and progress to a writer.
type Printer struct {
	w      io.Writer
	styles styles
	diff   bool
}

type Opts func(*printerOptions)

type printerOptions struct {
	color *bool
	diff  bool
}

// WithColor forces colored output on or off. By default, color is used only
// when the writer is a terminal.
func WithColor(color bool) Opts {
	return func(o *printerOptions) {
		o.color = &color
	}
}

// WithDiff includes the unified diff of each verified file in text output.
func WithDiff(diff bool) Opts {
	return func(o *printerOptions) {
		o.diff = diff
	}
}

// NewPrinter returns a [Printer] writing to w.
func NewPrinter(w io.Writer, opts ...Opts) *Printer {
	o := &printerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	color := IsTerminal(w)
	if o.color != nil {
		color = *o.color
	}

	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:      w,
		styles: newStyles(r),
		diff:   o.diff,
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes res in the given format.
func (p *Printer) Print(res *propagate.Result, format Format) error {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", syncerrors.ErrJSONMarshal, err)
		}

		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("%w: %w", syncerrors.ErrYAMLMarshal, err)
		}
	case FormatText:
		out = []byte(p.Text(res))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutputFormat, string(format))
	}

	if _, err := p.w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", syncerrors.ErrWrite, err)
	}

	return nil
}

// Text renders a human readable summary of res.
func (p *Printer) Text(res *propagate.Result) string {
	s := p.styles
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%s %s %s\n",
		s.title.Render("Version"),
		res.Version,
		s.faint.Render("("+string(res.BuildType)+")"),
	)
	fmt.Fprintf(sb, "%s %s\n", s.faint.Render("Snapshot"), res.SnapshotDir)
	fmt.Fprintf(sb, "%s %d files\n", s.faint.Render("Wrote"), len(res.Written))

	vr := res.Verification
	for _, f := range vr.Files {
		mark := s.check.String()
		if f.Matched != 1 {
			mark = s.cross.String()
		}

		fmt.Fprintf(sb, "  %s %s %s\n", mark, s.path.Render(f.Path),
			s.faint.Render(fmt.Sprintf("(%d matching changed lines)", f.Matched)))

		if p.diff && f.Diff != "" {
			sb.WriteString(indent(f.Diff, "    "))
		}
	}

	summary := fmt.Sprintf("Verified %d/%d changes of %s", vr.Matched, vr.Expected, vr.Needle)
	if vr.OK {
		fmt.Fprintln(sb, s.title.Render(summary))
	} else {
		fmt.Fprintln(sb, s.warn.Render(summary+"; inspect the snapshot"))
	}

	return sb.String()
}

// Event prints a progress line for a [propagate.Propagator] event. It is
// meant to be passed to [propagate.Propagator.Subscribe].
func (p *Printer) Event(evt any) {
	s := p.styles

	switch e := evt.(type) {
	case propagate.EventSnapshot:
		fmt.Fprintf(p.w, "%s saved %d files to %s\n", s.check, e.Files, e.Dir)
	case propagate.EventWrote:
		if e.Err != nil {
			fmt.Fprintf(p.w, "%s %s %s\n", s.cross, s.path.Render(e.Path), s.faint.Render(e.Err.Error()))

			return
		}

		fmt.Fprintf(p.w, "%s %s %s\n", s.check, s.path.Render(e.Path), s.faint.Render("("+e.Format+")"))
	}
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")

	sb := &strings.Builder{}
	for _, l := range lines {
		if l == "" {
			continue
		}

		sb.WriteString(prefix + l)
	}

	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}
