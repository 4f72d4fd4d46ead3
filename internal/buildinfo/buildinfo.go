// Package buildinfo carries release metadata injected at link time:
//
//	go build -ldflags "-X github.com/aidanlsb/datekit/internal/buildinfo.Version=v1.2.0"
package buildinfo

// Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Resolve picks the version to report: the module version from the Go build
// info when it is a real release, then the ldflags Version, then "devel".
func Resolve(moduleVersion string) string {
	if moduleVersion != "" && moduleVersion != "(devel)" {
		return moduleVersion
	}
	if Version != "" {
		return Version
	}
	return "devel"
}
