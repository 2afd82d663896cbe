package cli

import (
	"fmt"

	"github.com/gerrit-ai-review/gerrit-events/internal/config"
	"github.com/gerrit-ai-review/gerrit-events/internal/logger"
)

// ConfigureGlobalLogger initializes the process-wide logger from configuration,
// closing the log file of the logger it replaces.
func ConfigureGlobalLogger(cfg *config.Config) error {
	l, err := logger.NewLogger(cfg.LogLevel(), cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := logger.Replace(l); err != nil {
		return fmt.Errorf("failed to close previous logger: %w", err)
	}
	return nil
}
