// Package config defines the versionsync project configuration: the list of
// artifact targets, the verification subset and the build type policy.
//
// Configuration is read from an optional .versionsync.yaml file at the project
// root and layered over [Default].
package config
