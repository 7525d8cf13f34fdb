package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var resolveAt string

var resolveCmd = &cobra.Command{
	Use:   "resolve <origin> <destination>",
	Short: "Look up one transit route through the retry tiers",
	Args:  cobra.ExactArgs(2),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveAt, "at", "", "reference time, RFC 3339 (default now)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if resolveAt != "" {
		t, err := time.Parse(time.RFC3339, resolveAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		at = t
	}

	ctx := cmd.Context()
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	origin, err := a.Resolver.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resolve origin: %w", err)
	}
	destination, err := a.Resolver.Resolve(ctx, args[1])
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	res := a.Policy.Resolve(ctx, origin, destination, at)
	renderRoute(cmd.OutOrStdout(), origin, destination, res)

	return res.Err()
}
