package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/docsession/docsession/internal/config"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/seed"
	"github.com/docsession/docsession/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// flags
	dbPath    string
	userCount int
	fakerSeed int64

	cfg *config.Config
)

func init() {
	RootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (default DATABASE_PATH)")
	RootCmd.Flags().IntVar(&userCount, "users", 0, "number of users to generate (default SEED_USERS)")
	RootCmd.Flags().Int64Var(&fakerSeed, "faker-seed", 0, "seed for name generation, 0 picks a random one")
}

var RootCmd = cobra.Command{
	Use:   "seed",
	Short: "Reset the database with fake users and sample documents",
	Long: "Deletes every user and document, then inserts freshly generated users " +
		"with unique first names and the fixed sample documents in one transaction.",
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)
		if dbPath == "" {
			dbPath = cfg.Database.Path
		}
		if userCount <= 0 {
			userCount = cfg.Seed.Users
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.OpenSQLite(ctx, dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}

		logger.Infof("seeding %s with %d users", dbPath, userCount)
		res, err := seed.Run(ctx, db, seed.Options{Users: userCount, Faker: gofakeit.New(fakerSeed)})
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Infof("seed complete: %d users, %d documents", len(res.Users), len(res.Documents))
		return nil
	},
	SilenceUsage: true,
}
