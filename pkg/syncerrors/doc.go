// Package syncerrors provides error definitions shared across versionsync
// packages.
//
// This package defines standardized sentinel errors for file and encoding
// operations, so callers can match failures with [errors.Is] regardless of
// which artifact produced them.
package syncerrors
