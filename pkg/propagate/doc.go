// Package propagate writes one version into every configured artifact and
// verifies the result.
//
// A run validates the build type, parses the version, snapshots the
// verification subset, renders and writes every target, then diffs the
// verification subset against its snapshot and counts changed lines that
// contain the new version. Hard errors abort the run immediately without
// rolling back files already written; the snapshot directory is kept so the
// previous contents can be recovered by hand. A verification mismatch is only
// reported as a warning.
package propagate
