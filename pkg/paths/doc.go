// Package paths locates the project directory whose artifacts are versioned.
package paths
