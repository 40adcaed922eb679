package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gigwork_backend/database"
	"gigwork_backend/internal/app"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services"
)

// ErrLedgerDrift - reconcile нашел расхождения (ненулевой код выхода)
var ErrLedgerDrift = errors.New("ledger drift detected")

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API with background workers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, cfg)
}

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the database schema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			return database.AutoMigrate(db)
		},
	}
}

func NewSeedAdminCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:          "seed-admin",
		Short:        "Create the first admin account if it does not exist",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if email != "" {
				cfg.FirstAdminEmail = email
			}
			if password != "" {
				cfg.FirstAdminPassword = password
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return app.SeedFirstAdmin(db, cfg)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (overrides FIRST_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (overrides FIRST_ADMIN_PASSWORD)")
	return cmd
}

// NewReconcileCommand печатает отчет сверки балансов в JSON
func NewReconcileCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "reconcile",
		Short:        "Compare cached worker balances against the payment ledger",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}

			ledger := services.NewLedgerService(repositories.NewPaymentRepository(), repositories.NewUserRepository(), nil)
			report, err := ledger.Reconcile(db.WithContext(context.Background()))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Consistent() {
				logger.Warn("Ledger drift detected", "drifts", len(report.Drifts))
				return ErrLedgerDrift
			}
			return nil
		},
	}
}
