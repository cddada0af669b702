// Package tutil holds helpers shared by tests.
package tutil

import (
	"os"
	"strings"
	"testing"
)

// IsIntegrationTest is true when DUKA_TEST=integration, meaning a real backend and database are
// reachable.
func IsIntegrationTest() bool {
	return strings.ToLower(os.Getenv("DUKA_TEST")) == "integration"
}

// SkipUnlessIntegration skips t unless IsIntegrationTest and every env var in required is set.
func SkipUnlessIntegration(t *testing.T, required ...string) {
	t.Helper()

	if !IsIntegrationTest() {
		t.Skip("set DUKA_TEST=integration to run")
	}

	for _, key := range required {
		if os.Getenv(key) == "" {
			t.Skipf("%s not set", key)
		}
	}
}
