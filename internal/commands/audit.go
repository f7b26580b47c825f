package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/config"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/posting"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

func newAuditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check that the general ledger balances",
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

			stores := repository.NewStores(db)
			debits, credits, err := stores.Entries.Totals(cmd.Context())
			if err != nil {
				return err
			}

			balanced, err := posting.NewService(stores).ValidateBalance(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("debits:  %s\ncredits: %s\n", debits.StringFixed(2), credits.StringFixed(2))
			if !balanced {
				return fmt.Errorf("ledger is out of balance")
			}
			fmt.Println("ledger balances")
			return nil
		},
	}
}
