package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewthomaslee/moscripts/internal/output"
	"github.com/andrewthomaslee/moscripts/internal/password"
)

type passwordFlags struct {
	length    int
	custom    string
	noSymbols bool
	noLower   bool
	noUpper   bool
	noDigits  bool
	cli       bool
}

// newPasswordCmd creates the password command.
func newPasswordCmd() *cobra.Command {
	flags := &passwordFlags{}

	cmd := &cobra.Command{
		Use:     "password",
		Aliases: []string{"pw"},
		Short:   "Generate a random password",
		Long: `Generate a random password from lowercase, uppercase, digit and symbol
characters, or from a custom character set.

Examples:
  moscripts password
  moscripts pw --length 32 --no-symbols
  moscripts pw --custom 01 --length 16 --cli
  moscripts pw --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPassword(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "Password length (default from config: 64)")
	cmd.Flags().StringVarP(&flags.custom, "custom", "c", "", "Use exactly these characters")
	cmd.Flags().BoolVar(&flags.noSymbols, "no-symbols", false, "Exclude symbols")
	cmd.Flags().BoolVar(&flags.noLower, "no-lowercase", false, "Exclude lowercase letters")
	cmd.Flags().BoolVar(&flags.noUpper, "no-uppercase", false, "Exclude uppercase letters")
	cmd.Flags().BoolVar(&flags.noDigits, "no-digits", false, "Exclude digits")
	cmd.Flags().BoolVar(&flags.cli, "cli", false, "Print only the password")

	return cmd
}

func runPassword(cmd *cobra.Command, flags *passwordFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	opts := password.Options{
		Length:    a.cfg.Password.Length,
		Custom:    flags.custom,
		NoLower:   flags.noLower,
		NoUpper:   flags.noUpper,
		NoDigits:  flags.noDigits,
		NoSymbols: flags.noSymbols,
	}
	if cmd.Flags().Changed("length") {
		opts.Length = flags.length
	}

	pw, err := password.Generate(opts)
	if err != nil {
		return a.fail(output.NewUserErrorWithCause(err.Error(), err))
	}

	switch {
	case a.printer.IsJSON():
		return a.printer.WriteJSON(map[string]any{
			"length":        opts.Length,
			"character_set": opts.Charset(),
			"password":      pw,
		})
	case flags.cli:
		a.printer.Println(pw)
	default:
		a.printer.Println(a.printer.Styles().Dim.Render(fmt.Sprintf("length=%d", opts.Length)))
		a.printer.Println(a.printer.Styles().Dim.Render(fmt.Sprintf("character_set='%s'", opts.Charset())))
		a.printer.Println(a.printer.Styles().Success.Render(pw))
	}
	return nil
}
