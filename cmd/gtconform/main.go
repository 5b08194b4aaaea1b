// Command gtconform reconciles a target VCF's genotypes against a
// reference VCF, resolving strand and allele-symbol mismatches and
// emitting a filtered, re-oriented rewrite of the target.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biostrand/gtconform/internal/config"
	"github.com/biostrand/gtconform/internal/engine"
)

// Exit codes, per the spec's §6 external-interface contract.
const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

// buildVersion information, set at build time via -ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches between the primary key=value reconciliation mode and the
// version/config subcommands. A bare argument list of key=value tokens
// never reaches cobra: gtconform's primary surface predates, and is
// independent of, its ancillary subcommands.
func run(args []string) int {
	if engine.LooksLikeParams(args) {
		return runReconcile(args)
	}
	if len(args) == 0 {
		fmt.Println(engine.Usage)
		return exitSuccess
	}

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	return exitSuccess
}

func runReconcile(args []string) int {
	log := engine.NewLogger()
	defer log.Sync()

	p, err := engine.ParseParams(args)
	if err != nil {
		log.Error("configuration error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, engine.Usage)
		return exitUsage
	}

	if err := config.Init(); err != nil {
		log.Error("configuration error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	opts, minNSamples := config.Options()

	if err := engine.Run(p, opts, minNSamples, log); err != nil {
		log.Error("reconciliation failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gtconform",
		Short: "Reconcile a target VCF's genotypes against a reference VCF",
		Long: `gtconform reconciles a target VCF's genotypes against a reference VCF,
classifying each shared variant's strand relationship and emitting a
filtered, optionally strand-flipped rewrite of the target.

Run with no subcommand and a bare list of key=value arguments to perform
the reconciliation itself:

` + engine.Usage,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("gtconform version %s (%s) built %s\n", buildVersion, buildCommit, buildDate)
			return nil
		},
	}
}
