// Package render turns a parsed [buildversion.Version] into the text of each
// versioned artifact.
//
// Source constant files (Java, Objective-C, C++ header, JavaScript) are
// rendered from templates containing ${major}, ${minor}, ${patch},
// ${prerelease} and ${version} placeholders. Every placeholder is substituted
// in a single pass using the literal syntax of the target language, and a
// placeholder left in the output is reported as an error. Build-tool
// properties files are updated by replacing a single KEY=value line.
//
// Renderers are pure: they never touch the filesystem.
package render
