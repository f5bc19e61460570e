package services

import (
	"io"
	"os"
	"testing"

	"shopstack-products/pkg/logger"
)

// The services log through the global logger, which the API entrypoint
// initializes at startup; tests must do the same before exercising paths
// that log.
func TestMain(m *testing.M) {
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}
