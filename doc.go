// Package main implements the relbump CLI tool.
//
// relbump is the release step for coroutines-core. Given a version, it rewrites
// the coroutines-core version in readme.md and coroutines-core/pom.xml and
// prints the rewritten text of each file to standard output. Log lines and
// errors go to standard error.
//
// Command Usage:
//
//	relbump [flags] <version>
//
// Flags:
//
//	--config:      Path to a TOML file listing the artifact and targets.
//	               (Defaults to ./relbump.toml when it exists, otherwise the built-in targets)
//	-C, --dir:     Directory that target paths are resolved against.
//	--artifact:    Artifact whose version is rewritten. (Defaults to "coroutines-core")
//	--strict:      Reject versions that are not exactly N.N.N. Without it, anything
//	               starting with N.N.N is accepted, e.g. 1.2.3-beta.
//	--dry:         Print the rewritten files without modifying them.
//	-q, --quiet:   Do not print the rewritten files.
//	-v, --verbose: Log every rule applied.
//	--version:     Displays the version of the relbump CLI tool and exits.
//
// Exit status is 0 on success, 2 for an invalid version or bad invocation, and
// 1 when a target cannot be read or written.
//
// Examples:
//
//	# Point the docs and the pom at 2.5.0
//	relbump 2.5.0
//
//	# See what would change
//	relbump --dry 2.5.0
//
//	# Use a different set of targets
//	relbump --config release/relbump.toml 2.5.0
//
// A config file looks like:
//
//	artifact = "coroutines-core"
//
//	[[target]]
//	path = "readme.md"
//	rules = ["dependency", "jar"]
//
//	[[target]]
//	path = "coroutines-core/pom.xml"
//	rules = ["dependency"]
//
// For the library API, see the documentation in the "pkg" package.
package main
