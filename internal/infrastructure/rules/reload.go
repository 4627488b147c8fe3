package rules

import (
	"context"
	"log/slog"
	"os"

	"github.com/vigileye/vigil/internal/domain/service"
)

// Swapper installs a new rule set and returns the one it replaced.
type Swapper interface {
	Swap(rs *service.RuleSet) *service.RuleSet
}

// Reload loads path and installs it on target. On error the current rule
// set stays in place.
func Reload(path string, target Swapper, logger *slog.Logger) error {
	rs, err := Load(path)
	if err != nil {
		logger.Error("rule reload failed, keeping current rules", "path", path, "error", err)
		return err
	}
	prev := target.Swap(rs)
	logger.Info("rules reloaded", "path", path, "rules", rs.Len(), "previous", prev.Len())
	return nil
}

// WatchReload calls Reload each time sig delivers until ctx is done.
func WatchReload(ctx context.Context, sig <-chan os.Signal, path string, target Swapper, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			_ = Reload(path, target, logger)
		}
	}
}
