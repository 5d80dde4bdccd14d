package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply catalog migrations to DATABASE_DSN",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is not set")
		}
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return err
		}
		if !migrateSeed {
			return nil
		}

		pool, err := db.NewPool(cmd.Context(), cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		data, err := catalog.LoadMockData()
		if err != nil {
			return err
		}
		if err := catalog.NewPostgresRepository(pool).Seed(cmd.Context(), data); err != nil {
			return err
		}
		logger.Info("catalog seeded")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "load the bundled catalog after migrating")
}
