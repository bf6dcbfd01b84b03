// Command gerasctl drives the aging simulator: population runs,
// genome generation, lifespan predictions, and artifact export.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geras/pkg/geras"
)

type rootOptions struct {
	configPath string
	store      string
	dbPath     string
	reportsDir string
	exportsDir string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gerasctl",
		Short:         "Biological aging simulator and causal pattern miner",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "optional YAML config path")
	pf.StringVar(&opts.store, "store", "memory", "store backend: memory|sqlite")
	pf.StringVar(&opts.dbPath, "db-path", "geras.db", "sqlite database path")
	pf.StringVar(&opts.reportsDir, "reports-dir", "reports", "run artifacts directory")
	pf.StringVar(&opts.exportsDir, "exports-dir", "exports", "export output directory")
	pf.BoolVar(&opts.verbose, "verbose", false, "log simulation progress")

	root.AddCommand(
		newRunCmd(opts),
		newGenomeCmd(opts),
		newPredictCmd(opts),
		newRunsCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// newClient merges file config under explicit flags and opens the
// store behind the facade client.
func (o *rootOptions) newClient(cmd *cobra.Command) (*geras.Client, FileConfig, error) {
	cfg, err := loadFileConfig(o.configPath)
	if err != nil {
		return nil, FileConfig{}, err
	}

	flags := cmd.Flags()
	if !flags.Changed("store") && cfg.Store != "" {
		o.store = cfg.Store
	}
	if !flags.Changed("db-path") && cfg.DBPath != "" {
		o.dbPath = cfg.DBPath
	}
	if !flags.Changed("reports-dir") && cfg.ReportsDir != "" {
		o.reportsDir = cfg.ReportsDir
	}
	if !flags.Changed("exports-dir") && cfg.ExportsDir != "" {
		o.exportsDir = cfg.ExportsDir
	}

	var logger *zap.Logger
	if o.verbose {
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, FileConfig{}, err
		}
	}

	client, err := geras.New(geras.Options{
		StoreKind:  o.store,
		DBPath:     o.dbPath,
		ReportsDir: o.reportsDir,
		ExportsDir: o.exportsDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, FileConfig{}, err
	}
	return client, cfg, nil
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	req := geras.RunRequest{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a population cohort and mine causal patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			flags := cmd.Flags()
			if !flags.Changed("pop") && cfg.Run.Population > 0 {
				req.Population = cfg.Run.Population
			}
			if !flags.Changed("seed") && cfg.Run.Seed != 0 {
				req.Seed = cfg.Run.Seed
			}
			if !flags.Changed("workers") && cfg.Run.Workers > 0 {
				req.Workers = cfg.Run.Workers
			}
			if !flags.Changed("sequential") && cfg.Run.Sequential {
				req.Sequential = true
			}
			if !flags.Changed("skip-interventions") && cfg.Run.SkipInterventions {
				req.SkipInterventions = true
			}
			if !flags.Changed("fixed-lifestyle") && cfg.Run.FixedLifestyle {
				req.FixedLifestyle = true
			}
			if !flags.Changed("trajectories") && cfg.Run.Trajectories {
				req.Trajectories = true
			}
			if !flags.Changed("midlife-age") && cfg.Run.MidlifeAge > 0 {
				req.MidlifeAge = cfg.Run.MidlifeAge
			}
			if !flags.Changed("sample-cells") && cfg.Run.SampleCellsPerOrgan > 0 {
				req.SampleCellsPerOrgan = cfg.Run.SampleCellsPerOrgan
			}

			summary, err := client.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run completed run_id=%s pop=%d seed=%d\n",
				summary.RunID, summary.PopulationSize, req.Seed)
			fmt.Fprintf(out, "mean_lifespan=%.2f median_lifespan=%.2f centenarian_rate=%.4f\n",
				summary.MeanLifespan, summary.MedianLifespan, summary.CentenarianRate)
			fmt.Fprintf(out, "patterns=%d interventions=%d\n",
				summary.PatternCount, summary.InterventionCount)
			fmt.Fprintf(out, "artifacts_dir=%s\n", summary.ArtifactsDir)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&req.Population, "pop", 0, "population size (default from config or 10000)")
	fs.Int64Var(&req.Seed, "seed", 1, "rng seed")
	fs.IntVar(&req.Workers, "workers", 0, "worker count (0 uses one per CPU)")
	fs.BoolVar(&req.Sequential, "sequential", false, "disable the parallel worker pool")
	fs.BoolVar(&req.SkipInterventions, "skip-interventions", false, "skip the paired intervention arms")
	fs.BoolVar(&req.FixedLifestyle, "fixed-lifestyle", false, "give every life the default lifestyle")
	fs.BoolVar(&req.Trajectories, "trajectories", false, "keep full biomarker trajectories in the results")
	fs.Float64Var(&req.MidlifeAge, "midlife-age", 0, "age of the midlife biomarker panel (0 uses default)")
	fs.IntVar(&req.SampleCellsPerOrgan, "sample-cells", 0, "sampled cells per organ (0 uses default)")
	return cmd
}

func newGenomeCmd(opts *rootOptions) *cobra.Command {
	req := geras.GenomeRequest{}
	cmd := &cobra.Command{
		Use:   "genome",
		Short: "Generate and persist a random germline genome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			summary, err := client.GenerateGenome(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "genome_id=%s label=%s\n", summary.GenomeID, summary.Label)
			fmt.Fprintf(out, "risk overall=%.3f cancer=%.3f cardiovascular=%.3f neurodegeneration=%.3f metabolic=%.3f accelerated_aging=%.3f factors=%d\n",
				summary.RiskScore.Overall,
				summary.RiskScore.Cancer,
				summary.RiskScore.Cardiovascular,
				summary.RiskScore.Neurodegeneration,
				summary.RiskScore.Metabolic,
				summary.RiskScore.AcceleratedAging,
				summary.RiskFactors,
			)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Label, "label", "", "optional genome label")
	fs.Int64Var(&req.Seed, "seed", 1, "rng seed")
	return cmd
}

func newPredictCmd(opts *rootOptions) *cobra.Command {
	req := geras.PredictRequest{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a Monte Carlo lifespan prediction for a stored genome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			flags := cmd.Flags()
			if !flags.Changed("sims") && cfg.Predict.Simulations > 0 {
				req.Simulations = cfg.Predict.Simulations
			}
			if !flags.Changed("seed") && cfg.Predict.Seed != 0 {
				req.Seed = cfg.Predict.Seed
			}

			summary, err := client.Predict(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prediction_id=%s genome_id=%s sims=%d\n",
				summary.PredictionID, summary.GenomeID, summary.Simulations)
			fmt.Fprintf(out, "mean_lifespan=%.2f median_lifespan=%.2f stddev=%.2f most_likely_cause=%s\n",
				summary.MeanLifespan, summary.MedianLifespan, summary.StdDevLifespan, summary.MostLikelyCause)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&req.GenomeID, "genome-id", "", "stored genome id")
	fs.IntVar(&req.Simulations, "sims", 0, "simulated lives per prediction (default 100)")
	fs.Int64Var(&req.Seed, "seed", 1, "rng seed")
	_ = cmd.MarkFlagRequired("genome-id")
	return cmd
}

func newRunsCmd(opts *rootOptions) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted population runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			items, err := client.Runs(cmd.Context(), geras.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			for _, item := range items {
				fmt.Fprintf(out, "run_id=%s created_at=%s seed=%d pop=%d mean_lifespan=%.2f centenarian_rate=%.4f patterns=%d\n",
					item.RunID,
					item.CreatedAtUTC,
					item.Seed,
					item.Population,
					item.MeanLifespan,
					item.CentenarianRate,
					item.PatternCount,
				)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&limit, "limit", 20, "max runs to list")
	fs.BoolVar(&jsonOut, "json", false, "emit runs list as JSON")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	req := geras.ExportRequest{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy a run's artifact set into the exports directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := opts.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			summary, err := client.Export(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported run_id=%s dir=%s\n", summary.RunID, summary.Directory)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&req.RunID, "run-id", "", "run id to export")
	fs.BoolVar(&req.Latest, "latest", false, "export the most recent run")
	fs.StringVar(&req.OutDir, "out", "", "destination directory (default exports dir)")
	return cmd
}
