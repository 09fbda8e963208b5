package main

import (
	"fmt"
	"os"

	"github.com/AbdullahHad/WaadFinal/internal/config"
	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "followups",
		Short: "Follow-up commitment tracker",
		Long: `Tracks commitments employees make to outside organizations, flags the ones
that pass their due date as overdue and notifies their owners.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(employeeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, builds the logger and opens the database
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.GinMode)
	for _, warning := range cfg.Warnings {
		log.Warn().Msg(warning)
	}

	if err := cfg.Validate(); err != nil {
		return nil, log, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, log, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db, log); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
