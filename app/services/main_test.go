package services

import (
	"os"
	"testing"

	"github.com/m3rciful/storebot/core/logger"
)

func TestMain(m *testing.M) {
	// Service methods log through the shared component loggers.
	if err := logger.InitLogger(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
