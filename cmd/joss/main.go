// joss builds a dataset of Journal of Open Source Software review
// submissions from the openjournals/joss-reviews issue tracker.
//
// Installation:
//
//	go build -ldflags "-X main.version=$(git describe --tags)" -o joss ./cmd/joss
//
// Usage:
//
//	joss ingest
//	joss transform -i github_issues_1700000000.json
//	joss parse -i github_issues_normalized_1700000000.json
//	joss load -i joss_submissions_1700000000.json
//	joss export --format yaml
//	joss browse --published
//	joss mcp serve
package main

import (
	"os"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/cli"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	code := cli.Execute()
	logger.Sync()
	os.Exit(code)
}
