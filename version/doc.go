// Package version reports build metadata for the pzip binary.
//
// The values come from, in order of preference:
//   - compile-time variables (Version, Commit, Date) set via -ldflags
//   - runtime build info from debug.ReadBuildInfo()
//   - development defaults
//
// Release builds set them with:
//
//	-ldflags "-X github.com/dendrascience/parallel-zip/version.Version=v1.0.0 -X github.com/dendrascience/parallel-zip/version.Commit=abc123"
//
// The version is also recorded in every .pzf archive's metadata.
package version
