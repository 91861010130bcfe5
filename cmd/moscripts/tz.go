package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/tz"
)

// tzResult is the JSON shape of the tz command.
type tzResult struct {
	Input   string `json:"input"`
	Zone    string `json:"zone"`
	Offset  string `json:"offset"`
	Seconds int    `json:"offset_seconds"`
	Abbrev  string `json:"abbreviation"`
}

// newTZCmd creates the tz command.
func newTZCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tz [NAME]",
		Short: "Resolve a timezone and show its current offset",
		Long: `Resolve NAME (an IANA zone, a UTC offset or "local") and print the zone
and its current UTC offset. Without NAME the system timezone is queried.

Examples:
  moscripts tz
  moscripts tz Asia/Tokyo
  moscripts tz -- -03:30`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := tz.Local
			if len(args) == 1 {
				name = args[0]
			}
			return runTZ(cmd, name, time.Now())
		},
	}
}

func runTZ(cmd *cobra.Command, name string, now time.Time) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	loc, err := a.zones.Lookup(cmd.Context(), name)
	if err != nil {
		return a.fail(output.NewUserErrorWithCause(err.Error(), err))
	}

	abbrev, seconds := now.In(loc).Zone()
	result := tzResult{
		Input:   name,
		Zone:    loc.String(),
		Offset:  formatOffset(seconds),
		Seconds: seconds,
		Abbrev:  abbrev,
	}

	if a.printer.IsJSON() {
		return a.printer.WriteJSON(result)
	}
	a.printer.KeyValue("Zone", result.Zone)
	a.printer.KeyValue("Offset", fmt.Sprintf("UTC%s (%s)", result.Offset, result.Abbrev))
	return nil
}

// formatOffset renders seconds east of UTC as "+05:30".
func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
