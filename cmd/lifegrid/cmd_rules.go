package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/config"
	"lifegrid/internal/logging"
	"lifegrid/internal/plugin"
	"lifegrid/internal/sim"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules, built-in and plugin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log := logging.NewLogger(cfg.LogLevel, os.Stderr)

			reg := plugin.NewRegistry(log)
			if cfg.PluginDir != "" {
				report := reg.LoadFromDirectory(cfg.PluginDir)
				for _, f := range report.Failures {
					log.Warn("plugin failed to load", "file", f.File, "error", f.Err)
				}
			}

			bnd, err := boundary.FromString(cfg.Boundary)
			if err != nil {
				return err
			}
			s, err := sim.New(sim.Options{Width: cfg.Width, Height: cfg.Height},
				bnd, backend.Select("cpu", log), reg, log)
			if err != nil {
				return err
			}
			for _, name := range s.Rules() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
