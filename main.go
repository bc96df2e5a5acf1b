// Package main is the entry point for the zigdeps CLI application.
//
// zigdeps checks the dependencies pinned in build.zig.zon manifests against
// their latest revisions and optionally updates them.
package main

import "github.com/ajxudir/zigdeps/cmd"

func main() {
	cmd.Execute()
}
