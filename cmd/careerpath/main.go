// Command careerpath runs the matching engine and posting fetcher from the
// shell and performs database and cache maintenance.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "careerpath",
		Short:         "Job search tracker tooling",
		Long:          "careerpath compares resumes with job descriptions, fetches job postings and maintains the careerpath database and cache.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newFetchCmd(), newMigrateCmd(), newCacheCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
