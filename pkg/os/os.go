// Package os runs external processes on behalf of versionsync collaborators.
package os

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrExec indicates an external process failed.
var ErrExec = errors.New("exec")

type ExecOutput struct {
	Stdout string
	Stderr string
}

type ExecOptions struct {
	Stdin io.Reader
	// Dir is the working directory. The current directory is used if empty.
	Dir string
	// Env replaces the process environment when non-nil.
	Env []string
}

func Exec(name string, arg []string, opts ExecOptions) (*ExecOutput, error) {
	cmd := exec.Command(name, arg...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.Stdin = opts.Stdin

	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		stderr := strings.TrimSpace(errb.String())
		if stderr != "" {
			return nil, fmt.Errorf("%w: %s: %w: %s", ErrExec, name, err, stderr)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrExec, name, err)
	}

	return &ExecOutput{
		Stdout: outb.String(),
		Stderr: errb.String(),
	}, nil
}
