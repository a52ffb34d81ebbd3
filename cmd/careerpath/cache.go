package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/infrastructure/cache"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the analysis cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete cached analysis reports",
		Long:  "Delete cached analysis reports, for example after changing scoring weights.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			rdb := cache.NewRedis(cfg.Redis, log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			defer rdb.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			n, err := rdb.DeleteByPattern(ctx, usecase.AnalysisCachePrefix+"*")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached reports\n", n)
			return nil
		},
	})
	return cmd
}
