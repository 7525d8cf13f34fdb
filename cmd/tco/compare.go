package main

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/scenario"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	compareRankBy    string
	compareTimeValue float64
	compareTenancy   int
	compareLegs      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario>",
	Short: "Rank the candidates of a scenario file",
	Long: `Evaluates every candidate in a YAML or JSON scenario file against its
destinations and prints the candidates ranked by monthly total.

Examples:
  # Rank by cash total
  tco compare data/seeds/scenario.yaml

  # Include commute time valued at 1500 per hour
  tco compare data/seeds/scenario.yaml --rank-by cash_time --time-value 1500`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareRankBy, "rank-by", "", "override rank_by: cash or cash_time")
	compareCmd.Flags().Float64Var(&compareTimeValue, "time-value", -1, "override time value per hour")
	compareCmd.Flags().IntVar(&compareTenancy, "tenancy", 0, "override tenancy months for every candidate")
	compareCmd.Flags().BoolVar(&compareLegs, "legs", false, "show per-destination legs")
}

func runCompare(cmd *cobra.Command, args []string) error {
	doc, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}

	req, err := doc.Request()
	if err != nil {
		return err
	}
	if compareRankBy != "" {
		req.Options.RankBy = domain.RankBy(compareRankBy)
	}
	if compareTimeValue >= 0 {
		v := compareTimeValue
		req.Options.TimeValuePerHour = &v
	}
	if compareTenancy > 0 {
		req.Options.TenancyMonths = compareTenancy
	}

	ctx := cmd.Context()
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cmp, err := a.Engine.Compare(ctx, req)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	renderComparison(cmd.OutOrStdout(), cmp, compareLegs)
	return nil
}
