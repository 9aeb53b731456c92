package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Set by -ldflags; see the package documentation.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// buildSetting looks up a vcs.* key recorded by the Go toolchain.
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// GetVersion returns the ldflags version, then the module version from the
// build info, then "development".
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "development"
}

// GetCommit returns the source revision or "unknown".
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	if rev := buildSetting("vcs.revision"); rev != "" {
		return rev
	}
	return "unknown"
}

// GetBuildDate returns the build or commit time or "unknown".
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// ShortCommit returns the first seven characters of the commit hash, or
// "unknown".
func ShortCommit() string {
	c := GetCommit()
	if len(c) <= 7 {
		return c
	}
	return c[:7]
}

// GetFullVersion renders "v1.2.3 (abc1234, built <date>)", omitting what is
// not known.
func GetFullVersion() string {
	v := GetVersion()
	if GetCommit() == "unknown" {
		return v
	}
	if date := GetBuildDate(); date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", v, ShortCommit(), date)
	}
	return fmt.Sprintf("%s (%s)", v, ShortCommit())
}

// PrintVersion writes the multi-line version report for the version
// subcommand.
func PrintVersion(w io.Writer, appName string) {
	fmt.Fprintf(w, "%s version %s\n", appName, GetFullVersion())
	fmt.Fprintf(w, "Commit: %s\n", GetCommit())
	fmt.Fprintf(w, "Build Date: %s\n", GetBuildDate())
}
