package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/eduportal/database/seeders"
	"github.com/shashiranjanraj/eduportal/internal/server"
)

// eduportal db:indexes
var indexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the MongoDB indexes (unique usernames, order lookups)",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := server.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Creating indexes…")
		if err := rt.EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅  Indexes ready")
		return nil
	},
}

// eduportal seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := server.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close(context.Background())

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), rt.Store, cmd.OutOrStdout())
	},
}
