// Package buildversion parses raw version strings into immutable [Version]
// records and checks them against the prerelease policy of a [BuildType].
//
// The accepted grammar is MAJOR.MINOR.PATCH[-PRERELEASE]. Each build type
// carries a [Rule] describing whether a prerelease is forbidden, optional or
// required, and what it must look like. [DefaultPolicy] enumerates the rules
// used when no project configuration overrides them.
package buildversion
