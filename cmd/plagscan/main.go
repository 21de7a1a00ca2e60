package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/internal/version"
	"github.com/ludo-technologies/plagscan/service"
)

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "plagscan",
		Short: "Source code similarity and plagiarism detection",
		Long: `plagscan scores how similar two pieces of source code are and searches a
reference corpus for likely sources of a submission.

Each comparison combines four signals:
  • Lexical: token set overlap
  • Token sequence: longest common token subsequence
  • Structural: functions, control flow and variables
  • Semantic: cosine similarity of code embeddings

and maps the weighted score onto a risk tier (low, medium, high, very_high).`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(NewCompareCmd(opts))
	rootCmd.AddCommand(NewSearchCmd(opts))
	rootCmd.AddCommand(NewBatchCmd(opts))
	rootCmd.AddCommand(NewCorpusCmd(opts))
	rootCmd.AddCommand(NewLanguagesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return reportError(stderr, err)
	}
	return 0
}

// reportError prints err with recovery hints and returns its exit code
func reportError(w io.Writer, err error) int {
	var risk *riskExceededError
	if errors.As(err, &risk) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitRiskExceeded
	}

	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	fmt.Fprintf(w, "%s: %v\n", categorized.Category, err)
	if categorized.Category != service.ErrorCategoryUnknown {
		for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
	return exitError
}
