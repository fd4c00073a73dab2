// Package relbump rewrites the version of a released artifact in the files that mention it.
//
// It provides functionalities for:
//   - Validating a version argument of the form N.N.N.
//   - Rewriting the <version> tag of a Maven dependency block that names the artifact,
//     keeping everything between <artifactId> and <version> untouched.
//   - Rewriting packaged artifact filenames such as coroutines-core-1.2.3.jar.
//   - Writing every target through a temporary sibling file and an atomic rename.
//   - Loading custom targets from a relbump.toml file.
//
// By default the targets are readme.md (dependency and jar rules) and
// coroutines-core/pom.xml (dependency rule), relative to the working directory.
// Targets are processed one after another. There is no rollback: if the second
// target fails, the first stays rewritten. Running two rewrites against the same
// files at once is not supported.
//
// Usage Example:
//
//	import (
//	    "log"
//	    relbump "github.com/zarbosoft/relbump/pkg"
//	)
//
//	func main() {
//	    meta, err := relbump.Run(relbump.DefaultConfig(), "2.5.0")
//	    if err != nil {
//	        log.Fatalf("version rewrite failed: %v", err)
//	    }
//	    log.Printf("rewrote %v", meta.UpdatedFiles)
//	}
package relbump
