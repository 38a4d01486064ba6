//go:build integration

// Package integration runs the Gherkin feature suite against a fully wired
// server. Build with the integration tag: go test -tags integration ./test/...
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/minn-platform/backend/test/integration/steps"
)

// TestFeatures runs every scenario under features/.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // scenarios share one SQLite writer
		Strict:      true,
		TestingT:    t,
	}

	// GODOG_TAGS narrows the run, e.g. GODOG_TAGS=@wip
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name:                 "minn-platform-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}
