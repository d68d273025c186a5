package propagate

import (
	"github.com/MacroPower/versionsync/pkg/buildversion"
)

// FileCheck is the verification outcome of a single file.
type FileCheck struct {
	Path string `json:"path"`
	// Diff is the unified diff against the snapshot.
	Diff string `json:"-"`
	// Matched counts changed lines containing the version.
	Matched int `json:"matched"`
}

// Verification compares the number of changed lines containing the new
// version with the number of verified files.
type Verification struct {
	Needle   string      `json:"needle"`
	Files    []FileCheck `json:"files"`
	Expected int         `json:"expected"`
	Matched  int         `json:"matched"`
	OK       bool        `json:"ok"`
}

// Result describes a completed run.
type Result struct {
	Version      string                 `json:"version"`
	BuildType    buildversion.BuildType `json:"buildType"`
	SnapshotDir  string                 `json:"snapshotDir"`
	Written      []string               `json:"written"`
	Verification Verification           `json:"verification"`
}
