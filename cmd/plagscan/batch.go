package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/app"
	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/service"
)

// BatchCommand represents the batch command
type BatchCommand struct {
	global *globalOptions

	language        string
	recursive       bool
	minScore        float64
	includePatterns []string
	excludePatterns []string
}

// NewBatchCommand creates a new batch command
func NewBatchCommand(global *globalOptions) *BatchCommand {
	return &BatchCommand{
		global:    global,
		recursive: true,
	}
}

// CreateCobraCommand creates the cobra command for all-pairs comparison
func (b *BatchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <paths...>",
		Short: "Compare every pair of files in a set of submissions",
		Long: `Collect source files from the given files and directories and compare
every pair. Pairs are listed from most to least similar.

Examples:
  # Compare all submissions of an assignment
  plagscan batch submissions/

  # Only report pairs scoring at least 0.7
  plagscan batch --min-score 0.7 --include "**/*.py" submissions/`,
		Args: cobra.MinimumNArgs(1),
		RunE: b.runBatch,
	}

	cmd.Flags().StringVarP(&b.language, "language", "l", "", "Language of every file (default: auto)")
	cmd.Flags().BoolVarP(&b.recursive, "recursive", "r", true, "Recurse into subdirectories")
	cmd.Flags().Float64Var(&b.minScore, "min-score", 0, "Only report pairs scoring at least this value")
	cmd.Flags().StringSliceVar(&b.includePatterns, "include", nil, "Glob patterns of files to include")
	cmd.Flags().StringSliceVar(&b.excludePatterns, "exclude", nil, "Glob patterns of files to exclude")

	return cmd
}

// runBatch executes the batch command
func (b *BatchCommand) runBatch(cmd *cobra.Command, args []string) error {
	lang, err := parseLanguageFlag(b.language)
	if err != nil {
		return err
	}
	if b.minScore < 0 || b.minScore > 1 {
		return domain.NewInvalidInputError("--min-score must be between 0 and 1", nil)
	}

	ctx := cmd.Context()
	env, err := b.global.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	progress := service.NewProgressManager("Comparing pairs")
	defer progress.Close()

	svc := service.NewComparisonService(env.engine, service.ComparisonServiceOptionsFromConfig(env.cfg), progress)
	useCase := app.NewBatchUseCase(svc, service.NewFileReader(), env.formatter)

	var resp *domain.BatchCompareResponse
	err = b.global.writeReport(cmd, env.format, func(w io.Writer) error {
		var execErr error
		resp, execErr = useCase.Execute(ctx, app.BatchInput{
			Paths:           args,
			Recursive:       b.recursive,
			IncludePatterns: b.includePatterns,
			ExcludePatterns: b.excludePatterns,
			Language:        lang,
			MinScore:        b.minScore,
			OutputFormat:    env.format,
			OutputWriter:    w,
		})
		return execErr
	})
	if err != nil {
		return err
	}
	if len(resp.Pairs) == 0 {
		return nil
	}
	return b.global.checkFailOn(resp.Pairs[0].RiskLevel)
}

// NewBatchCmd creates and returns the batch cobra command
func NewBatchCmd(global *globalOptions) *cobra.Command {
	return NewBatchCommand(global).CreateCobraCommand()
}
