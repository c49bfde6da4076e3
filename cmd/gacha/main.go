// Package main provides the command line simulator.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-backend/internal/app"
	"github.com/xtding233/gacha-backend/internal/config"
	"github.com/xtding233/gacha-backend/internal/draw"
	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/session"
)

const (
	defaultTrials = 1000
)

var (
	flagSession   string
	flagStore     string
	flagConfigDir string
	flagGame      string
	flagDataDir   string
	flagSeed      uint64

	simMode     string
	simTrials   int
	simMaxDraws int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gacha",
		Short:         "SR+ collection gacha simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSession, "session", session.GlobalKey, "session key")
	pf.StringVar(&flagStore, "store", "", "store backend: memory, file, sqlite or redis (env GACHA_STORE)")
	pf.StringVar(&flagConfigDir, "config-dir", "", "directory holding games/*.yaml (env GACHA_CONFIG_DIR)")
	pf.StringVar(&flagGame, "game", "", "game configuration name (env GACHA_GAME)")
	pf.StringVar(&flagDataDir, "data-dir", "", "file store directory (env GACHA_DATA_DIR)")
	pf.Uint64Var(&flagSeed, "seed", 0, "seed for reproducible draws; 0 uses crypto randomness")

	rootCmd.AddCommand(newOpCmd("draw", "Perform one single draw", (*draw.Orchestrator).RunSingle))
	rootCmd.AddCommand(newOpCmd("batch", "Perform one 11-draw batch", (*draw.Orchestrator).RunBatch))
	rootCmd.AddCommand(newOpCmd("reset", "Reset progress and spend", (*draw.Orchestrator).ResetAll))
	rootCmd.AddCommand(newOpCmd("status", "Show progress without drawing", (*draw.Orchestrator).Status))
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

// loadConfig reads the environment and applies flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	applyString(cmd, "store", &cfg.Store, flagStore)
	applyString(cmd, "config-dir", &cfg.ConfigDir, flagConfigDir)
	applyString(cmd, "game", &cfg.Game, flagGame)
	applyString(cmd, "data-dir", &cfg.DataDir, flagDataDir)
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	cfg.WatchInterval = 0
	return cfg, nil
}

func applyString(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

type operation func(o *draw.Orchestrator, ctx context.Context, key string) (draw.Result, error)

func newOpCmd(use, short string, op operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := session.ValidateKey(flagSession); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a, err := app.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeApp(a)

			res, err := op(a.Orchestrator, ctx, flagSession)
			if err != nil {
				return err
			}
			renderResult(cmd.OutOrStdout(), res, a.Settings.Token.Name)
			return nil
		},
	}
}

func closeApp(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print a fresh session key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), uuid.NewString())
			return nil
		},
	}
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate draws and spend needed to collect every premium item",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simMode, "mode", string(gacha.ModeBatch), "single or batch")
	cmd.Flags().IntVar(&simTrials, "trials", defaultTrials, "number of simulated collections")
	cmd.Flags().IntVar(&simMaxDraws, "max-draws", 0, "per-trial draw cap (0 = 100000)")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	if simTrials <= 0 {
		return fmt.Errorf("--trials must be positive")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Store = "memory"
	a, err := app.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeApp(a)

	var rng gacha.RandomSource
	if cfg.Seed != 0 {
		rng = gacha.NewSeededRNG(cfg.Seed)
	}
	st, err := gacha.SimulateCompletion(a.Settings.Table, gacha.SimParams{
		Mode:     gacha.SimMode(simMode),
		Trials:   simTrials,
		Premium:  a.Settings.Premium,
		MaxDraws: simMaxDraws,
	}, rng)
	if err != nil {
		return err
	}
	spend := a.Settings.Token.TokensForDraws(int(math.Round(st.Mean)))
	renderStats(cmd.OutOrStdout(), simMode, simTrials, st, spend, a.Settings.Token.Name)
	return nil
}
