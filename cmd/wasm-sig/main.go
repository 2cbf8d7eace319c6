package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-introspect/introspect"
	"github.com/wippyai/wasm-introspect/verify"
	"github.com/wippyai/wasm-introspect/wasm"
)

var version = "<unknown>"

type options struct {
	verbose     bool
	verify      bool
	interactive bool
	all         bool
}

func newRootCommand() *cobra.Command {
	var opts options

	command := &cobra.Command{
		Use:   "wasm-sig <module.wasm> [export-name...]",
		Short: "Print the signatures of exported WebAssembly functions",
		Long: "wasm-sig decodes a WebAssembly module and prints one line per requested export:\n\n" +
			"  add: funcidx=0 typeidx=0 (i32, i32) -> (i32)\n" +
			"  missing: (not exported)\n\n" +
			"With no export names, every function export is listed.",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			wasm.SetLogger(log.Named("wasm"))
			introspect.SetLogger(log.Named("introspect"))

			cfg := introspect.Config{
				ModulePath: args[0],
				Names:      args[1:],
				All:        opts.all,
			}

			if opts.interactive {
				if !term.IsTerminal(int(os.Stdout.Fd())) {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				return runInteractive(cfg.ModulePath)
			}

			return run(cmd, cfg, opts.verify)
		},
	}

	flags := command.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log decoding details to stderr")
	flags.BoolVar(&opts.verify, "verify", false, "cross-check signatures by compiling the module with wazero")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "browse exports in a terminal UI")
	flags.BoolVar(&opts.all, "all", false, "list every function export, ignoring export names")

	return command
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(cmd *cobra.Command, cfg introspect.Config, check bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := introspect.Load(cfg.ModulePath)
	if err != nil {
		return err
	}
	results, err := introspect.Query(data, cfg)
	if err != nil {
		return err
	}
	if err := introspect.WriteResults(cmd.OutOrStdout(), results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if check {
		return verify.Check(cmd.Context(), data, results)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
