// Package output provides structured output handling for the moscripts CLI.
//
// Every command writes through a Printer so that colored status lines, errors
// and --json output behave the same way across the timestamp, motmp,
// playlist, password and doctor commands.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr())
//
//	printer.Notice("Initializing motmp...")   // yellow
//	printer.Done("Setup MOTMP complete.")     // green
//	printer.Info("Found 3 playlists.")        // cyan
//	printer.Error(err)                        // "Error: ..." on stderr
//	printer.Table(headers, rows)              // go-pretty table
//
// Status lines are suppressed in JSON mode; Success and WriteJSON carry the
// structured result instead.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success, or a cancelled prompt
//	output.ExitUserError   // 1: validation failure, missing binary, declined prompt
//	output.ExitSystemError // 2: I/O failure, subprocess could not start
//
// A ChildExitError carries the exit status of a launched program (marimo,
// mpv) and GetExitCode returns it unchanged. ErrCancelled marks a prompt the
// user backed out of and maps to ExitSuccess.
package output
