package commands

import (
	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/config"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/repository"
	"github.com/openbooks-dev/openbooks/internal/seed"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Init("openbooks", cfg.LogLevel, cfg.AppEnv)

			db, err := connectDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return seed.Apply(cmd.Context(), repository.NewStores(db))
		},
	}
}
