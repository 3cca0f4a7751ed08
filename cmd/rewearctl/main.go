// Command rewearctl is the operator CLI for a ReWear deployment: it seeds
// the store, prints leaderboards and impact figures, and tails the admin
// moderation stream.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rewear/internal/config"
)

// loadConfig is replaced in tests.
var loadConfig = config.LoadConfig

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "rewearctl",
		Short:         "Operate a ReWear backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(
		newSeedCmd(),
		newLeaderboardCmd(),
		newImpactCmd(),
		newWatchCmd(),
	)
	return root
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
