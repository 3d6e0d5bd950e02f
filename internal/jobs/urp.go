package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nt-labs/gameday/internal/slack"
	"github.com/nt-labs/gameday/internal/strategy"
)

// URPStrategy runs one strategy cycle and posts a summary when orders were
// placed. The notifier is optional; a nil notifier only logs.
func URPStrategy(ctx context.Context, strat *strategy.Strategy, notifier *slack.Notifier, ch slack.Channel, logger *slog.Logger) error {
	report, err := strat.Run(ctx)
	if err != nil {
		return fmt.Errorf("run strategy: %w", err)
	}

	if report.Skipped {
		logger.Info("strategy run skipped", "reason", report.SkipReason)
		return nil
	}

	logger.Info("strategy run complete",
		"balance", report.Balance.StringFixed(2),
		"eligible", report.Eligible,
		"submitted", report.Submitted,
		"rejected", report.Rejected,
	)

	if notifier != nil {
		text := fmt.Sprintf("URP strategy: %d/%d orders submitted (%d rejected), balance $%s",
			report.Submitted, report.Eligible, report.Rejected, report.Balance.StringFixed(2))
		if err := notifier.SendMessage(ctx, ch, text); err != nil {
			// A failed summary post should not fail a run whose orders
			// already went through.
			logger.Error("post strategy summary", "error", err)
		}
	}

	return nil
}
