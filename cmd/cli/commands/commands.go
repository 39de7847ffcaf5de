// Package commands wires the cfndep pipeline into a cobra command tree. It is
// also imported by cmd/docgen to generate usage documentation.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"go.interactor.dev/cfndep"
	"go.interactor.dev/cfndep/encoding"
)

// CLIName is name of the binary
const CLIName = "cfndep"

// version is expected to be set with -ldflags="-X go.interactor.dev/cfndep/cmd/cli/commands.version=1.2.3"
var version = "dev-version"

type config struct {
	directory string
	outFile   string
	verbose   bool
	direction string
}

// NewCommand returns the root command with the full CLI surface
func NewCommand() *cobra.Command {
	c := &config{}
	cmd := &cobra.Command{
		Use:           CLIName + " [--directory analyzeMe] [--output-file result.md] [--direction (LR|BT)] [--verbose]",
		Example:       CLIName + " --directory ./stacks --output-file deps.md",
		Short:         CLIName + " renders dependencies between CloudFormation templates as a Mermaid graph",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run(c),
	}
	cmd.SetVersionTemplate(CLIName + " " + version + "\n")

	f := cmd.Flags()
	f.StringVarP(&c.directory, "directory", "d", ".", "Directory to search for CFn templates")
	f.StringVarP(&c.outFile, "output-file", "o", "", "File name to save the output to (e.g. result.md). If not specified, only standard output is used")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Output detailed logs")
	f.StringVarP(&c.direction, "direction", "D", string(encoding.LeftToRight), "Direction of Mermaid diagram (LR: left to right, BT: bottom to top)")

	return cmd
}

func run(c *config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		direction, err := encoding.ParseDirection(c.direction)
		if err != nil {
			return err
		}

		log := buildLogger(cmd.ErrOrStderr(), c.verbose)
		scanner := cfndep.NewScanner(log)

		templates, err := scanner.Discover(c.directory)
		if err != nil {
			return err
		}
		if c.verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Exploration Templates: %v\n", templates)
		}

		results, err := scanner.ScanFiles(templates)
		if err != nil {
			return err
		}

		graph := cfndep.BuildGraph(results)
		for _, ref := range cfndep.CheckSelfReferences(results) {
			warnf(cmd.ErrOrStderr(),
				"[WARNING] %s references its own Cfn template's Export(%s) using Fn::ImportValue or !ImportValue.",
				ref.Path, ref.Name)
		}

		text := encoding.BuildMermaid(graph, direction)
		if c.outFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}

		if err := writeOutput(c.outFile, text); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Mermaid notation has been output to %s.\n", c.outFile)
		return nil
	}
}

func buildLogger(w io.Writer, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	if verbose {
		lvl = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
