// Package main provides the nfctools entry point and CLI interface.
//
// nfctools plans the recording window for a night of nocturnal flight call
// monitoring: it resolves the site's timezone, computes the twilight
// transitions of the night and applies the chosen trigger events and offsets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(normalizeArgs(root, os.Args[1:]))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithOptions(&options{})
}

func newRootCmdWithOptions(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "nfctools [flags] LATITUDE LONGITUDE",
		Short: "Plan recording windows for nocturnal flight calls of migrating birds",
		Long: `nfctools computes the twilight transitions of a night at the recording site
and derives when to start and stop recording nocturnal flight calls.

The start trigger is one of the evening events and the end trigger one of the
morning events. Offsets shift a trigger earlier (negative) or later:
  H:M:S, M:S or M, e.g. --start-offset=-15:30 starts 15.5 minutes early.

Coordinates may come from the positional arguments, a config file (JSON or
YAML) or NFC_LATITUDE/NFC_LONGITUDE in the environment or a .env file.

Examples:
  # Record from astronomical dusk to astronomical dawn
  nfctools 40.781 -73.967

  # Start 30 minutes after sunset, stop at sunrise
  nfctools -t sunset --start-offset 30 -e sunrise 40.781 -73.967

  # Block until the window starts, then let the wrapper script record
  nfctools --wait 40.781 -73.967 && sox -d night.flac

  # Show every transition of the night
  nfctools events 40.781 -73.967`,
		Args:          coordinateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args)
		},
	}

	opts.register(root)
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.AddCommand(&cobra.Command{
		Use:           "events [flags] LATITUDE LONGITUDE",
		Short:         "Print every twilight transition of the night",
		Args:          coordinateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, opts, args)
		},
	})

	return root
}
