package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MikeSquared-Agency/Topsis/internal/table"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

func newRankCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <input.csv>",
		Short: "Score and rank a decision table",
		Example: `  topsis rank data.csv --weights 1,1,1,2 --impacts +,+,-,+
  topsis rank data.csv -w 1,1,1 -i +,-,+ -o result.csv --precision 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd.OutOrStdout(), args[0], v)
		},
	}

	flags := cmd.Flags()
	flags.StringP("weights", "w", "", "Comma-separated criterion weights, e.g. 1,1,1,2")
	flags.StringP("impacts", "i", "", "Comma-separated impacts (+ benefit, - cost), e.g. +,+,-,+")
	flags.StringP("output", "o", "", "Output CSV file (stdout if empty)")
	flags.Int("precision", 6, "Decimals written for scores (-1 for full precision)")
	flags.Bool("dense", false, "Use dense ranking (1,2,2,3) instead of competition ranking (1,2,2,4)")
	flags.Bool("strict-weights", false, "Reject zero and negative weights")

	for _, name := range []string{"weights", "impacts", "output", "precision", "dense", "strict-weights"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func runRank(stdout io.Writer, input string, v *viper.Viper) error {
	weights, impacts := v.GetString("weights"), v.GetString("impacts")
	if weights == "" || impacts == "" {
		return fmt.Errorf("--weights and --impacts are required")
	}
	precision := v.GetInt("precision")
	if precision < -1 {
		return fmt.Errorf("--precision must be -1 or greater, got %d", precision)
	}

	opts := topsis.Options{StrictWeights: v.GetBool("strict-weights")}
	if v.GetBool("dense") {
		opts.RankMethod = topsis.RankDense
	}

	t, err := table.ReadFile(input)
	if err != nil {
		return err
	}
	res, err := t.Rank(topsis.NewEngine(opts), weights, impacts)
	if err != nil {
		return err
	}

	out := v.GetString("output")
	if out == "" {
		return table.WriteRanked(stdout, t, res, precision)
	}

	// The file is only created once the whole table has been encoded.
	data, err := table.Encode(t, res, precision)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
