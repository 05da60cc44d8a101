package quorum

// GitCommit is set at build time:
//
//   go build -ldflags "-X github.com/iov-one/quorum.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

const release = "v0.1.0-dev"

// Version is the release, followed by the commit when it is known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
