// Package compileinfo reports the VCS state that a binary was built from, so
// that every table can be traced back to the code that produced it.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Short is a compact build identifier: the abbreviated commit, marked with
// "+dirty" for modified trees, or "unknown" when no VCS data was embedded.
func (c CompileInfo) Short() string {
	if c.Commit == "" {
		return "unknown"
	}

	commit := c.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}

	if c.Modified {
		commit += "+dirty"
	}

	return commit
}

// Get reads the build information embedded by the Go toolchain. Fields that
// were not recorded (e.g. under go test) are left empty.
func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
