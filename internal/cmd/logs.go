package cmd

import (
	"fmt"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	"github.com/Egor213/LogKeeper/internal/app"
	"github.com/spf13/cobra"
)

func newParseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "Store access-log files for the logged-in account",
		Long: `Parse reads the given files, or every file with the configured extension
in the configured directory, and stores each well-formed line. Files ending in
.gz or .zst are decompressed. Malformed lines are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.currentUser()
			if err != nil {
				return err
			}

			svc, closeFn, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.IngestFiles(cmd.Context(), user, args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Batch %s: %d accepted, %d rejected.\n", res.BatchID, res.Accepted, res.Rejected)
			return nil
		},
	}
}

func newOutputCmd(c *cli) *cobra.Command {
	var from, to, format string

	cmd := &cobra.Command{
		Use:   "output",
		Short: "Print the stored records of the logged-in account",
		Long: `Output prints every stored record through the format, in stored order.
With --from only that day is printed; with --from and --to every day between
them, both included. Dates look like 10/Oct/2023:13:55:36, 10/Oct/2023 or
2023-10-10.

Format tokens: %h host, %l identity, %u user, %t time, %r request line,
%>s status, %b size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.currentUser()
			if err != nil {
				return err
			}
			rng, err := accesslog.NewDateRange(from, to)
			if err != nil {
				return err
			}

			svc, closeFn, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			lines, err := svc.Report(cmd.Context(), user, rng, format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day to print")
	cmd.Flags().StringVar(&to, "to", "", "last day to print (default: --from)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (default: report.format from the config)")
	return cmd
}

func newPurgeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored record of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.currentUser()
			if err != nil {
				return err
			}

			svc, closeFn, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := svc.Forget(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records.\n", n)
			return nil
		},
	}
}

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, metrics and gRPC health checks",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return app.Run(c.cfg)
		},
	}
}
