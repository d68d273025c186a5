package os_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vsos "github.com/MacroPower/versionsync/pkg/os"
)

func TestExec(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	out, err := vsos.Exec("sh", []string{"-c", "cat; echo err >&2"}, vsos.ExecOptions{
		Stdin: strings.NewReader("hello"),
		Dir:   t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Stdout)
	assert.Equal(t, "err\n", out.Stderr)
}

func TestExecFailure(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	_, err := vsos.Exec("sh", []string{"-c", "echo broken >&2; exit 3"}, vsos.ExecOptions{})
	require.ErrorIs(t, err, vsos.ErrExec)
	assert.Contains(t, err.Error(), "broken")
}
