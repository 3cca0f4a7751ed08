package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rewear/internal/bootstrap"
	"rewear/internal/cache"
	"rewear/internal/database"
	"rewear/internal/featureflags"
	"rewear/internal/impact"
	"rewear/internal/models"
	"rewear/internal/repository"
	"rewear/internal/seed"
	"rewear/internal/service"
)

func newSeedCmd() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo community into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if database.IsMemory(cfg) {
				return errors.New("refusing to seed an in-memory store that is discarded on exit: set DB_DSN to a SQLite file or use DB_DRIVER=postgres")
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			res, err := seed.Seed(cmd.Context(), db, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&opts.ExtraUsers, "extra-users", 0, "generated members to add, each with one approved listing")
	cmd.Flags().Int64Var(&opts.FakerSeed, "faker-seed", 0, "seed for generated data (0 picks a random one)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "seed even when the store already has members")
	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var timeframe string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard for a timeframe",
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, ok := models.ParseTimeframe(timeframe)
			if !ok {
				return fmt.Errorf("unknown timeframe %q", timeframe)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, _, err := bootstrap.InitRuntime(cmd.Context(), cfg, bootstrap.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			svc := service.NewLeaderboardService(
				repository.NewUserRepository(db),
				repository.NewItemRepository(db),
				repository.NewSwapRepository(db),
				cache.New(nil),
				featureflags.NewManager(cfg.FeatureFlags),
			)
			entries, err := svc.Leaderboard(cmd.Context(), tf)
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		},
	}
	cmd.Flags().StringVar(&timeframe, "timeframe", string(models.TimeframeAllTime), "weekly, monthly or all_time")
	return cmd
}

func newImpactCmd() *cobra.Command {
	var swaps, listed, points int
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Compute environmental impact and level for the given counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, impact.Summarize(points, swaps, listed))
		},
	}
	cmd.Flags().IntVar(&swaps, "swaps", 0, "successful swaps")
	cmd.Flags().IntVar(&listed, "listed", 0, "items listed")
	cmd.Flags().IntVar(&points, "points", 0, "points")
	return cmd
}
