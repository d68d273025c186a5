package propagate

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"github.com/MacroPower/versionsync/pkg/buildversion"
	"github.com/MacroPower/versionsync/pkg/config"
	"github.com/MacroPower/versionsync/pkg/manifest"
	"github.com/MacroPower/versionsync/pkg/render"
	"github.com/MacroPower/versionsync/pkg/snapshot"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
	"github.com/MacroPower/versionsync/pkg/verify"
)

var (
	ErrWriteTarget = errors.New("write target failed")
	ErrSnapshot    = errors.New("snapshot failed")
	ErrVerify      = errors.New("verification failed")
)

// Propagator writes a version into the targets of a [config.Config].
type Propagator struct {
	config  *config.Config
	updater manifest.TemplateUpdater
	root    string
	subs    []func(any)
}

type Opts func(*Propagator)

// WithTemplateUpdater replaces the updater used for template-manifest
// targets.
func WithTemplateUpdater(u manifest.TemplateUpdater) Opts {
	return func(p *Propagator) {
		p.updater = u
	}
}

// New returns a [Propagator] for the project at root. The configuration is
// validated up front.
func New(root string, cfg *config.Config, opts ...Opts) (*Propagator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	p := &Propagator{
		config: cfg,
		root:   absRoot,
		subs:   []func(any){},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Root returns the absolute project root.
func (p *Propagator) Root() string {
	return p.root
}

func (p *Propagator) Subscribe(f func(any)) {
	p.subs = append(p.subs, f)
}

func (p *Propagator) broadcastEvent(evt any) {
	for _, sub := range p.subs {
		sub(evt)
	}
}

// Propagate parses rawVersion for buildType and writes it into every target.
// When dependencyVersions is non-nil, matching dependencies of the manifest
// targets are overridden. The returned error is non-nil only for hard
// failures; a verification mismatch is reported through the [Result].
func (p *Propagator) Propagate(
	rawVersion string,
	dependencyVersions map[string]string,
	buildType buildversion.BuildType,
) (*Result, error) {
	if err := buildType.Validate(); err != nil {
		return nil, err
	}

	v, err := p.config.Policy.Parse(rawVersion, buildType)
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.New(p.root, p.config.SnapshotDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	logger := slog.With(
		slog.String("cmd", "set_version"),
		slog.String("run", filepath.Base(snap.Dir)),
		slog.String("version", v.String()),
		slog.String("build_type", buildType.String()),
	)

	if err := snap.SaveFiles(p.config.Verify...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	logger.Info("saved snapshot", slog.String("dir", snap.Dir))
	p.broadcastEvent(EventSnapshot{Dir: snap.Dir, Files: len(snap.Saved)})

	res := &Result{
		Version:     v.String(),
		BuildType:   buildType,
		SnapshotDir: snap.Dir,
		Written:     []string{},
	}

	for _, t := range p.config.Targets {
		logger.Debug("writing target",
			slog.String("path", t.Path),
			slog.String("format", string(t.Format)),
		)

		err := p.WriteTarget(t, v, dependencyVersions)
		p.broadcastEvent(EventWrote{Path: t.Path, Format: string(t.Format), Err: err})

		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrWriteTarget, t.Path, err)
		}

		res.Written = append(res.Written, t.Path)
	}

	res.Verification, err = p.Verify(snap, v.String())
	if err != nil {
		return nil, err
	}

	p.broadcastEvent(EventVerified{Verification: res.Verification})

	if !res.Verification.OK {
		logger.Warn("version was not found in every expected file; check the diff against the snapshot",
			slog.Int("expected", res.Verification.Expected),
			slog.Int("matched", res.Verification.Matched),
			slog.Any("files", p.config.Verify),
			slog.String("snapshot", snap.Dir),
		)
	} else {
		logger.Info("verified version change",
			slog.Int("files", res.Verification.Expected),
		)
	}

	return res, nil
}

// WriteTarget renders v into a single target and writes it.
func (p *Propagator) WriteTarget(t config.Target, v buildversion.Version, deps map[string]string) error {
	switch {
	case t.Format.IsSource():
		return p.writeSource(t, v)
	case t.Format == render.FormatProperties:
		return p.writeProperties(t, v)
	case t.Format == render.FormatManifest:
		return p.writeManifest(t, v, deps)
	case t.Format == render.FormatTemplateManifest:
		return p.writeTemplateManifest(t, v, deps)
	}

	return fmt.Errorf("%w: %q", render.ErrUnsupportedFormat, string(t.Format))
}

// Verify diffs every file of the verification subset against snap and
// counts changed lines containing needle.
func (p *Propagator) Verify(snap *snapshot.Snapshot, needle string) (Verification, error) {
	vr := Verification{
		Needle:   needle,
		Expected: len(p.config.Verify),
		Files:    []FileCheck{},
	}

	for _, path := range p.config.Verify {
		before, err := snap.Read(path)
		if err != nil {
			return Verification{}, fmt.Errorf("%w: %w", ErrVerify, err)
		}

		after, err := p.read(path)
		if err != nil {
			return Verification{}, fmt.Errorf("%w: %w", ErrVerify, err)
		}

		matched := verify.CountMatchingChangedLines(before, after, needle)
		vr.Matched += matched
		vr.Files = append(vr.Files, FileCheck{
			Path:    path,
			Matched: matched,
			Diff:    verify.Unified(path, before, after),
		})
	}

	vr.OK = vr.Matched == vr.Expected

	return vr, nil
}

func (p *Propagator) writeSource(t config.Target, v buildversion.Version) error {
	r, err := render.NewSourceRenderer(t.Format)
	if err != nil {
		return err
	}

	tmpl, err := p.template(t)
	if err != nil {
		return err
	}

	out, err := r.Render(tmpl, v)
	if err != nil {
		return err
	}

	return p.write(t.Path, []byte(out))
}

func (p *Propagator) writeProperties(t config.Target, v buildversion.Version) error {
	content, err := p.read(t.Path)
	if err != nil {
		return err
	}

	out, err := render.NewPropertiesRenderer(t.Key).Render(content, v)
	if err != nil {
		return err
	}

	return p.write(t.Path, []byte(out))
}

func (p *Propagator) writeManifest(t config.Target, v buildversion.Version, deps map[string]string) error {
	m, err := manifest.Load(p.abs(t.Path))
	if err != nil {
		return err
	}

	m, err = m.SetVersion(v.String())
	if err != nil {
		return err
	}

	if deps != nil {
		var applied []string

		m, applied, err = m.ApplyVersions(deps)
		if err != nil {
			return err
		}

		slog.Debug("applied dependency versions",
			slog.String("path", t.Path),
			slog.Any("applied", applied),
		)
	}

	return p.write(t.Path, m.Bytes())
}

func (p *Propagator) writeTemplateManifest(t config.Target, v buildversion.Version, deps map[string]string) error {
	self, err := p.selfPackage(t)
	if err != nil {
		return err
	}

	versions := map[string]string{}
	maps.Copy(versions, deps)
	versions[self] = v.String()

	return p.templateUpdater(t).UpdateTemplatePackage(versions)
}

func (p *Propagator) templateUpdater(t config.Target) manifest.TemplateUpdater {
	switch {
	case p.updater != nil:
		return p.updater
	case len(t.Command) > 0:
		return manifest.NewExecTemplateUpdater(p.root, t.Command)
	default:
		return manifest.NewFileTemplateUpdater(p.abs(t.Path))
	}
}

// selfPackage returns the key under which the library's own version is
// written into the template manifest.
func (p *Propagator) selfPackage(t config.Target) (string, error) {
	if t.SelfPackage != "" {
		return t.SelfPackage, nil
	}

	lib, ok := p.config.Target(render.FormatManifest)
	if !ok {
		return "", fmt.Errorf("%w: no package name for template manifest", syncerrors.ErrInvalidArguments)
	}

	m, err := manifest.Load(p.abs(lib.Path))
	if err != nil {
		return "", err
	}

	return m.Name()
}

func (p *Propagator) template(t config.Target) (string, error) {
	if t.Template == "" {
		return render.DefaultTemplate(t.Format)
	}

	return p.read(t.Template)
}

func (p *Propagator) abs(path string) string {
	return filepath.Join(p.root, filepath.FromSlash(path))
}

func (p *Propagator) read(path string) (string, error) {
	b, err := os.ReadFile(p.abs(path))
	if err != nil {
		return "", fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
	}

	return string(b), nil
}

func (p *Propagator) write(path string, data []byte) error {
	full := p.abs(path)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil { //nolint:gosec // Source directories are world-readable.
		return fmt.Errorf("%w: %w", syncerrors.ErrWriteFile, err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil { //nolint:gosec // Artifacts are world-readable.
		return fmt.Errorf("%w: %w", syncerrors.ErrWriteFile, err)
	}

	return nil
}
