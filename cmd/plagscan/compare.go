package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/app"
	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/service"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	global *globalOptions

	language  string
	language1 string
	language2 string
	detailed  bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand(global *globalOptions) *CompareCommand {
	return &CompareCommand{global: global}
}

// CreateCobraCommand creates the cobra command for pairwise comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two source files",
		Long: `Compare two source files and report a similarity score, the per-signal
breakdown and a risk tier. Use "-" for one of the files to read it from stdin.

The language of each file is taken from --language1/--language2, then
--language, then the file extension, and finally detected from the content.

Examples:
  # Compare two submissions
  plagscan compare alice.py bob.py

  # Include matching line evidence and a unified diff
  plagscan compare --evidence --detailed alice.py bob.py

  # Fail a CI job when the risk is high or worse
  plagscan compare --fail-on high a.js b.js`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	cmd.Flags().StringVarP(&c.language, "language", "l", "", "Language of both files (default: auto)")
	cmd.Flags().StringVar(&c.language1, "language1", "", "Language of the first file")
	cmd.Flags().StringVar(&c.language2, "language2", "", "Language of the second file")
	cmd.Flags().BoolVarP(&c.global.overrides.ShowEvidence, config.FlagEvidence, "e", true, "Include matching line evidence")
	cmd.Flags().BoolVar(&c.detailed, "detailed", false, "Include function overlap, statistics and a diff")
	cmd.Flags().IntVar(&c.global.overrides.MinLineLength, config.FlagMinLineLength, domain.DefaultEvidenceMinLineLength, "Minimum trimmed line length for evidence")

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	lang1, lang2, err := c.languages()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := c.global.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	svc := service.NewComparisonService(env.engine, service.ComparisonServiceOptionsFromConfig(env.cfg), nil)
	useCase := app.NewCompareUseCase(svc, service.NewFileReader(), env.formatter)

	var result *domain.ComparisonResult
	err = c.global.writeReport(cmd, env.format, func(w io.Writer) error {
		var execErr error
		result, execErr = useCase.Execute(ctx, app.CompareInput{
			Path1:           args[0],
			Path2:           args[1],
			Language1:       lang1,
			Language2:       lang2,
			IncludeEvidence: env.cfg.Output.ShowEvidence,
			Detailed:        c.detailed,
			OutputFormat:    env.format,
			OutputWriter:    w,
			Stdin:           cmd.InOrStdin(),
		})
		return execErr
	})
	if err != nil {
		return err
	}
	return c.global.checkFailOn(result.RiskLevel)
}

func (c *CompareCommand) languages() (domain.Language, domain.Language, error) {
	shared, err := parseLanguageFlag(c.language)
	if err != nil {
		return "", "", err
	}
	lang1, lang2 := shared, shared
	if c.language1 != "" {
		if lang1, err = parseLanguageFlag(c.language1); err != nil {
			return "", "", err
		}
	}
	if c.language2 != "" {
		if lang2, err = parseLanguageFlag(c.language2); err != nil {
			return "", "", err
		}
	}
	return lang1, lang2, nil
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd(global *globalOptions) *cobra.Command {
	return NewCompareCommand(global).CreateCobraCommand()
}
