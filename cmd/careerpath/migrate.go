package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/database/migration"
	dbpostgres "github.com/26nm/careerpath/internal/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			db, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			return migration.Runner{Logger: logger}.Run(ctx, db)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall migration timeout")
	return cmd
}
