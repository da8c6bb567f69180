package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	v.SetEnvPrefix("TOPSIS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "topsis",
		Short: "Rank alternatives in a CSV decision table with TOPSIS",
		Long: `topsis scores every row of a decision table by its relative closeness to the
ideal solution and appends "Topsis Score" and "Rank" columns.

The first column names the alternatives; every other column is a numeric
criterion. Weights and impacts are comma-separated, one per criterion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRankCmd(v), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "topsis %s\n", version)
		},
	}
}
