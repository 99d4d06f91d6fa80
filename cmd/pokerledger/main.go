package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pokerledger",
		Short: "Poker night ledger and settlement",
		Long: `pokerledger tracks buy-ins, chip trades and cash-outs for a poker night
and settles the table at the end.

Run "serve" for the JSON API and Discord bot, or "settle" to work out
payments from final chip counts without a server.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSettleCmd())

	return rootCmd
}
