package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Tools   []checkResult  `json:"tools"`
	Motmp   []checkResult  `json:"motmp"`
	Config  []checkResult  `json:"config"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

type doctorFlags struct {
	quiet bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the external programs and paths moscripts relies on",
		Long: `Check the external programs and paths moscripts relies on.

Runs health checks across three categories:
  TOOLS   - nix, gum, mpv, uv and timedatectl
  MOTMP   - the notebook directory and its virtual environment
  CONFIG  - config file, default timezone and playlists directory

Each check reports:
  ok - check passed
  !! - non-critical issue (a fallback exists)
  XX - a command will fail until this is fixed

Examples:
  moscripts doctor
  moscripts doctor --quiet
  moscripts doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	result := gatherDoctorChecks(cmd, a)

	if a.printer.IsJSON() {
		if err := a.printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		outputDoctorHuman(a.printer, result, flags.quiet)
	}

	if result.Summary.Failed > 0 {
		return output.NewUserError(fmt.Sprintf("%d doctor checks failed", result.Summary.Failed))
	}
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, a *app) *doctorResult {
	result := &doctorResult{
		Version: version,
		Tools:   runToolChecks(),
		Motmp:   runMotmpChecks(a.cfg),
		Config:  runConfigChecks(cmd, a),
		Summary: &doctorSummary{},
	}

	all := append(append(append([]checkResult{}, result.Tools...), result.Motmp...), result.Config...)
	for _, check := range all {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

// outputDoctorHuman prints one table per category and a summary line.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("moscripts doctor v%s\n", result.Version)

	printCheckSection(printer, "TOOLS", result.Tools, quiet)
	printCheckSection(printer, "MOTMP", result.Motmp, quiet)
	printCheckSection(printer, "CONFIG", result.Config, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		rows = append(rows, []string{statusIcon(check.Status), check.Name, check.Message, check.Hint})
	}
	if len(rows) == 0 {
		return
	}

	printer.Section(title)
	printer.Table([]string{"", "Check", "Result", "Hint"}, rows)
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
