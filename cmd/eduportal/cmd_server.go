package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/config"
	"github.com/shashiranjanraj/eduportal/internal/kernel"
	"github.com/shashiranjanraj/eduportal/internal/server"
	"github.com/shashiranjanraj/eduportal/pkg/cache"
)

// eduportal serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server (alias: run)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			config.Set("APP_PORT", port)
		}
		if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
			config.Set("DB_DRIVER", driver)
		}
		return server.Start(cmd.Context())
	},
}

// eduportal route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides APP_PORT)")
	serveCmd.Flags().String("driver", "", "store driver: mongo or memory (overrides DB_DRIVER)")
}

// printRoutes builds the kernel over an in-memory store; no connections are
// opened.
func printRoutes(out io.Writer) error {
	k := kernel.NewHTTPKernel(kernel.DepsFromConfig(repositories.NewMemoryStore(), &cache.Cache{}, nil))

	infos := k.Routes()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
