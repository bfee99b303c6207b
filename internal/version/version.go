package version

// Set at build time with -ldflags "-X github.com/redjax/nbview/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	RepoUser = "redjax"
	RepoName = "nbview"
	RepoUrl  = "https://github.com/redjax/nbview"
	Package  = "nbview"
)

type PackageInfo struct {
	PackageName        string
	RepoUrl            string
	RepoUser           string
	RepoName           string
	PackageVersion     string
	PackageCommit      string
	PackageReleaseDate string
}

// GetPackageInfo returns a struct with information about the current build
func GetPackageInfo() PackageInfo {
	return PackageInfo{
		PackageName:        Package,
		RepoUrl:            RepoUrl,
		RepoUser:           RepoUser,
		RepoName:           RepoName,
		PackageVersion:     Version,
		PackageCommit:      Commit,
		PackageReleaseDate: Date,
	}
}

// String is the one-line form printed by `nbview version`
func (p PackageInfo) String() string {
	return p.PackageName + " " + p.PackageVersion + " (commit " + p.PackageCommit + ", built " + p.PackageReleaseDate + ")"
}
