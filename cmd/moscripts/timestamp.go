package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/timestamp"
)

type timestampFlags struct {
	targetTZ string
	format   string
	at       string
}

// newTimestampCmd creates the timestamp command.
func newTimestampCmd() *cobra.Command {
	flags := &timestampFlags{}

	cmd := &cobra.Command{
		Use:     "timestamp",
		Aliases: []string{"ts"},
		Short:   "Print a human-readable timestamp",
		Long: `Print the current time (or --at INSTANT) in a target timezone.

The timezone is an IANA name (America/Chicago), a UTC offset (+05:30) or
"local" for this machine's zone. The format uses strftime directives.

Examples:
  moscripts timestamp
  moscripts ts -t Europe/Berlin -f '%H:%M'
  moscripts ts -t +05:30 --at 2024-01-01T12:00:00Z
  moscripts ts --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimestamp(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.targetTZ, "target-tz", "t", "", "Target timezone (default from config: America/Chicago)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "strftime format (default from config: %Y-%m-%d %I:%M:%S %p)")
	cmd.Flags().StringVar(&flags.at, "at", "", "Format this instant instead of now (RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]], naive means UTC)")

	return cmd
}

func runTimestamp(cmd *cobra.Command, flags *timestampFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	zone := flags.targetTZ
	if zone == "" {
		zone = a.cfg.Timestamp.TargetTZ
	}
	layout := flags.format
	if layout == "" {
		layout = a.cfg.Timestamp.Format
	}

	var at *time.Time
	if flags.at != "" {
		instant, err := timestamp.ParseInstant(flags.at)
		if err != nil {
			return a.fail(output.NewUserErrorWithCause(err.Error(), err))
		}
		at = &instant
	}

	f := &timestamp.Formatter{Zones: a.zones}
	stamp, err := f.Format(cmd.Context(), at, zone, layout)
	if err != nil {
		return a.fail(output.NewUserErrorWithCause(err.Error(), err))
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(stamp)
	}
	a.printer.Println(a.printer.Styles().Key.Render(stamp.Text))
	return nil
}
