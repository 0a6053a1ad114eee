// Package misc keeps program identity: name, version and source revision.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set at link time with -ldflags "-X nsx/misc.version=... -X nsx/misc.hash=...".
var (
	version = ""
	hash    = ""
)

const appName = "nsx"

// GetAppName returns program name without extension.
func GetAppName() string {
	if len(os.Args) == 0 {
		return appName
	}
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	if name == "" || name == "." || strings.HasSuffix(name, ".test") {
		return appName
	}
	return name
}

// GetVersion returns version of the program. When not set by linker, module
// version from build info is used.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns VCS revision the program was built from.
func GetGitHash() string {
	if hash != "" {
		return hash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
