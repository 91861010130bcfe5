package main

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/config"
	"github.com/andrewthomaslee/moscripts/internal/logging"
	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/proc"
	"github.com/andrewthomaslee/moscripts/internal/prompt"
	"github.com/andrewthomaslee/moscripts/internal/tz"
)

// app bundles what a command needs for one invocation.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	printer *output.Printer
	runner  *proc.Local
	zones   *tz.Resolver
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return boolFlag(cmd, "json")
}

func isVerbose(cmd *cobra.Command) bool {
	return boolFlag(cmd, "verbose")
}

func boolFlag(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	return flag != nil && flag.Value.String() == "true"
}

func stringFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer for cmd from --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	colored := output.ResolveColorMode(stringFlag(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), colored).WithStderr(cmd.ErrOrStderr())
}

// newApp loads configuration and builds the logger, printer and runners.
// Configuration errors are printed and returned as user errors.
func newApp(cmd *cobra.Command) (*app, error) {
	printer := newPrinter(cmd)

	cfg, err := config.Load(stringFlag(cmd, "config"))
	if err != nil {
		return nil, report(printer, output.NewUserErrorWithCause(err.Error(), err))
	}

	log := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Output:  cmd.ErrOrStderr(),
		Verbose: isVerbose(cmd),
	})

	runner := proc.NewLocal(log)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	return &app{
		cfg:     cfg,
		log:     log,
		printer: printer,
		runner:  runner,
		zones:   &tz.Resolver{Run: proc.Run, Log: log},
	}, nil
}

// prompter picks the interactive backend, or a fixed answer when assumeYes
// is set.
func (a *app) prompter(assumeYes bool) (prompt.Prompter, error) {
	if assumeYes {
		return prompt.Static{Answer: true}, nil
	}
	p, err := prompt.New(a.cfg.Prompt.Backend, a.log)
	if err != nil {
		return nil, err
	}
	if gum, ok := p.(*prompt.Gum); ok {
		gum.Stdin = a.runner.Stdin
		gum.Stderr = a.runner.Stderr
	}
	return p, nil
}

// fail reports err and returns what RunE should return. Human-mode errors
// are printed once by the root error handler; JSON mode writes the error
// object to stdout here. A cancelled prompt is not an error.
func (a *app) fail(err error) error {
	return report(a.printer, err)
}

func report(printer *output.Printer, err error) error {
	if errors.Is(err, output.ErrCancelled) {
		printer.Cancelled()
		return nil
	}
	var child *output.ChildExitError
	if printer.IsJSON() && !errors.As(err, &child) {
		printer.Error(err)
	}
	return err
}
