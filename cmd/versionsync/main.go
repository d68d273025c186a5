package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/versionsync/internal/cli"
)

const (
	cmdName = "versionsync"

	shortDesc = "Keep every version string of a package in sync."
	longDesc  = `versionsync writes a single release version into every artifact that
embeds it: source constant files (Java, Objective-C, C++, JavaScript), the
package manifests and the build properties file.

Before writing, the files that must change are snapshotted; afterwards each
one is diffed against its snapshot to check that the new version landed.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
