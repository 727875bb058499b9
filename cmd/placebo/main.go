package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"causalval/adapters/excel"
	"causalval/adapters/postgres"
	"causalval/domain/core"
	"causalval/domain/dataset"
	"causalval/domain/stats"
	"causalval/domain/transforms"
	"causalval/internal"
	"causalval/internal/analysis"
	"causalval/internal/config"
	"causalval/internal/testkit"
	"causalval/internal/validation"
	"causalval/ports"
)

// Runs a placebo test over two simulated panels (one raw, one deformed by
// trend and periodic transforms), writes the summary workbook, and
// optionally persists the summaries when DATABASE_URL is set.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	datasets, err := buildDatasets(cfg)
	if err != nil {
		log.Fatalf("failed to build datasets: %v", err)
	}

	models := []ports.ModelPort{testkit.DiffInMeansModel{}}
	test, err := validation.NewPlaceboTest(models, datasets,
		validation.WithLogger(logger),
		validation.WithProgress(internal.NewLogProgress(logger)),
	)
	if err != nil {
		log.Fatalf("failed to configure placebo test: %v", err)
	}

	ctx := context.Background()
	result, err := test.ExecuteParallel(ctx, cfg.Placebo.Workers)
	if err != nil {
		log.Fatalf("placebo test failed: %v", err)
	}

	table, err := analysis.Summarize(result)
	if err != nil {
		log.Fatalf("failed to aggregate effects: %v", err)
	}
	if err := table.Validate(cfg.Placebo.StrictSchema); err != nil {
		log.Fatalf("summary table failed schema validation: %v", err)
	}

	for _, row := range table.Rows {
		logger.Info("%s on %s: effect=%.4f%% stddev=%.4f stderr=%.4f p=%.4f (n=%d)",
			row.Model, row.Dataset, row.Effect, row.StdDev, row.StdErr, row.PValue, row.NUnits)
	}

	if err := excel.WriteSummaryReport(cfg.Report.Path, table); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	logger.Info("report written to %s", cfg.Report.Path)

	if cfg.Database.Enabled {
		if err := persist(ctx, cfg.Database.URL, table); err != nil {
			log.Fatalf("failed to persist summaries: %v", err)
		}
	}
}

func buildDatasets(cfg *config.Config) ([]*dataset.Dataset, error) {
	simCfg := testkit.DefaultSimulationConfig()
	simCfg.Seed = cfg.Placebo.Seed

	baseline, err := testkit.Simulate("baseline", simCfg)
	if err != nil {
		return nil, err
	}

	raw, err := testkit.Simulate("deformed", simCfg)
	if err != nil {
		return nil, err
	}
	trend, err := transforms.NewTrend(1,
		transforms.SeededVarying(transforms.Normal(0.05, 0.01), cfg.Placebo.Seed),
		transforms.Fixed(0),
	)
	if err != nil {
		return nil, err
	}
	chain := transforms.Chain{
		trend,
		transforms.NewPeriodic(
			transforms.Fixed(2), transforms.Fixed(3), transforms.Fixed(0), transforms.Fixed(0),
		),
	}
	deformed, err := chain.Apply(raw)
	if err != nil {
		return nil, err
	}

	return []*dataset.Dataset{baseline, deformed}, nil
}

func persist(ctx context.Context, url string, table stats.Table) error {
	db, err := postgres.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	repo := postgres.NewResultRepository(db)
	return repo.SaveSummaries(ctx, core.RunID(core.NewID()), table)
}
