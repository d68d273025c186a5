// Package manifest edits package manifests (package.json documents) in place.
//
// Edits are applied to the raw document bytes, so key order, indentation and
// unrelated values are preserved and a version change only touches the lines
// holding the changed values.
package manifest
