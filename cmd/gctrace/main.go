// Command gctrace generates the Traceable methods (Trace, Root, Deroot,
// RootChildren, DerootChildren) for struct types marked with a
// "gctrace:generate" doc comment, the same way stringer generates String
// methods for marked constants.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/loom-lang/gcrt/internal/derive"
	"github.com/loom-lang/gcrt/internal/diagnostic"
)

var log = logrus.New()

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "gctrace",
		Short: "Generate Traceable method sets for gc.Gc-bearing structs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newListCommand())
	root.AddCommand(newGenerateCommand())
	return root
}

func newListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the struct types marked for generation in a package",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := derive.Load(dir)
			if err != nil {
				return err
			}
			for _, name := range derive.Candidates(pkg) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "package directory to inspect")
	return cmd
}

func newGenerateCommand() *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Emit Traceable methods for every marked struct in a package",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := derive.Load(dir)
			if err != nil {
				return err
			}

			names := derive.Candidates(pkg)
			if len(names) == 0 {
				log.Warnf("gctrace: no gctrace:generate markers found in %s", dir)
				return nil
			}
			log.Debugf("gctrace: generating methods for %d type(s): %v", len(names), names)

			source, diags, err := derive.Generate(pkg, names)
			if len(diags) > 0 {
				diagnostic.Report(cmd.ErrOrStderr(), diags)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(dir, "gctrace_generated.go")
			}
			return os.WriteFile(output, source, 0o644)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "package directory to inspect")
	cmd.Flags().StringVar(&output, "out", "", "output file (default: <dir>/gctrace_generated.go)")
	return cmd
}
