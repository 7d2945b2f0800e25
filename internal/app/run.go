package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/dasmanifest/internal/dataset"
)

// Run reads the dataset list, builds the manifest and writes it to the
// configured output path. Datasets that fail to resolve are skipped; only
// input, output and cancellation errors fail the run.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	datasets, err := dataset.ReadListFile(a.config.InputPath)
	if err != nil {
		return err
	}
	a.logger.Info("Dataset list loaded.", "path", a.config.InputPath, "datasets", len(datasets))

	m, report, err := a.builder.Build(ctx, datasets)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	if err := m.WriteFile(a.config.OutputPath); err != nil {
		return err
	}

	a.logger.Info("Manifest build finished.",
		"datasets", report.Total,
		"written", report.Written,
		"failed", len(report.Failed),
		"malformed", len(report.Malformed),
	)
	if len(report.Failed) > 0 {
		a.logger.Warn("Some datasets could not be resolved.", "datasets", report.Failed)
	}

	fmt.Fprintf(a.outW, "Saved: %s\n", a.config.OutputPath)
	a.logger.Debug("App.Run method finished.")
	return nil
}
