package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/config"
	"lifegrid/internal/logging"
	"lifegrid/internal/metrics"
	"lifegrid/internal/plugin"
	"lifegrid/internal/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print per-generation metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)

			steps, _ := cmd.Flags().GetInt("steps")
			pattern, _ := cmd.Flags().GetString("pattern")
			soup, _ := cmd.Flags().GetBool("soup")
			seed, _ := cmd.Flags().GetInt64("seed")
			quiet, _ := cmd.Flags().GetBool("quiet")

			log := logging.NewLogger(cfg.LogLevel, os.Stderr)

			bnd, err := boundary.FromString(cfg.Boundary)
			if err != nil {
				return err
			}
			be := backend.Select(cfg.Backend, log)
			reg := plugin.NewRegistry(log)
			if cfg.PluginDir != "" {
				report := reg.LoadFromDirectory(cfg.PluginDir)
				log.Info("plugins loaded", "count", report.Loaded, "failures", len(report.Failures))
			}

			s, err := sim.New(sim.Options{
				Width:           cfg.Width,
				Height:          cfg.Height,
				UndoDepth:       cfg.UndoDepth,
				MetricsCapacity: cfg.MetricsCapacity,
				HashCapacity:    cfg.HashCapacity,
			}, bnd, be, reg, log)
			if err != nil {
				return err
			}

			var cells []sim.Cell
			if pattern != "" {
				cells, err = sim.Pattern(pattern, cfg.Width, cfg.Height)
				if err != nil {
					return err
				}
			}
			if err := s.Initialize(cfg.Rule, cells); err != nil {
				return err
			}
			if soup {
				if err := s.Soup(seed); err != nil {
					return err
				}
			}

			if !quiet {
				s.SetStepCallback(func(r metrics.Record) {
					fmt.Printf("gen %d\tpop %d\tdelta %+d\tdensity %.4f\tentropy %.4f\tcomplexity %.4f\tcycle %d\n",
						r.Generation, r.Population, r.Delta, r.Density, r.Entropy, r.Complexity, r.CyclePeriod)
				})
			}

			// Ctrl-C aborts the batch between generations.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := s.Step(ctx, steps); err != nil {
				log.Warn("run stopped early", "error", err)
			}

			summary := s.MetricsSummary()
			fmt.Printf("\nrule %s, %d generations: population %d (max %d), avg density %.4f, avg entropy %.4f\n",
				s.RuleName(), summary.Metrics.Generations, summary.Metrics.CurrentPopulation,
				summary.Metrics.MaxPopulation, summary.Metrics.AvgDensity, summary.Metrics.AvgEntropy)
			return nil
		},
	}

	cmd.Flags().Int("steps", 100, "Number of generations to run")
	cmd.Flags().String("rule", "", "Rule id: built-in name, plugin name, or B/S rulestring")
	cmd.Flags().Int("width", 0, "Grid width")
	cmd.Flags().Int("height", 0, "Grid height")
	cmd.Flags().String("boundary", "", "Boundary mode: wrap, fixed, reflect")
	cmd.Flags().String("backend", "", "Compute backend: auto, cpu, arrow")
	cmd.Flags().String("pattern", "", "Seed pattern: glider, block, blinker, r-pentomino")
	cmd.Flags().Bool("soup", false, "Seed with a random soup")
	cmd.Flags().Int64("seed", 1, "Random seed for soup seeding")
	cmd.Flags().Bool("quiet", false, "Suppress per-generation output")
	return cmd
}

// applyFlags overlays explicitly set command-line flags onto the config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("rule"); v != "" {
		cfg.Rule = v
	}
	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		cfg.Width = v
	}
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		cfg.Height = v
	}
	if v, _ := cmd.Flags().GetString("boundary"); v != "" {
		cfg.Boundary = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
}
