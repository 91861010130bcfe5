// Package main provides the entry point for the moscripts CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/config"
	"github.com/andrewthomaslee/moscripts/internal/envfile"
	"github.com/andrewthomaslee/moscripts/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	return runRoot(context.Background(), newRootCmd())
}

// runRoot executes root through fang and returns the process exit code.
func runRoot(ctx context.Context, root *cobra.Command) int {
	err := fang.Execute(ctx, root,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			printError(w, isJSONMode(root), err)
		}),
	)
	return output.GetExitCode(err)
}

var errorLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// printError writes "Error: message" to w. JSON-mode errors were already
// written to stdout by the command, and a child's exit status speaks for
// itself, so neither is repeated here.
func printError(w io.Writer, jsonMode bool, err error) {
	var child *output.ChildExitError
	if jsonMode || errors.As(err, &child) {
		return
	}
	label := "Error"
	if output.IsTTY(w) {
		label = errorLabel.Render(label)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", label, err.Error())
}

// newRootCmd creates the root command for the moscripts CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moscripts",
		Short: "Small personal command-line utilities",
		Long: `moscripts - a personal collection of command-line utilities.

  timestamp  print the current time in a chosen timezone
  tz         show the resolved timezone and its offset
  motmp      create and edit throwaway marimo notebooks
  playlist   play a playlist with mpv
  password   generate a random password
  doctor     check the external programs the commands rely on

Most commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'moscripts --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over env file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles(cmd)
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
	cmd.PersistentFlags().String("config", "", "Path to config.toml (default: "+displayConfigPath()+")")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

func displayConfigPath() string {
	if path := config.DefaultPath(); path != "" {
		return path
	}
	return "config.toml"
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; variables already set are never overwritten.
//
// Resolution order:
//  1. $CWD/.env
//  2. ~/.config/moscripts/env
func loadEnvFiles(cmd *cobra.Command) {
	paths := []string{".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	applied, err := envfile.LoadFirst(paths...)
	if !isVerbose(cmd) {
		return
	}
	printer := newPrinter(cmd)
	if err != nil {
		printer.Stderr("env file: %v\n", err)
	}
	if len(applied) > 0 {
		printer.Stderr("env file set: %s\n", strings.Join(applied, ", "))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "time", Title: "Time Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "launch", Title: "Launch Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "util", Title: "Utility Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newTimestampCmd(), "time")
	addGroupedCommand(cmd, newTZCmd(), "time")

	addGroupedCommand(cmd, newMotmpCmd(), "launch")
	addGroupedCommand(cmd, newPlaylistCmd(), "launch")

	addGroupedCommand(cmd, newPasswordCmd(), "util")
	addGroupedCommand(cmd, newDoctorCmd(), "util")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
