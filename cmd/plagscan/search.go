package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/app"
	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/service"
)

// SearchCommand represents the search command
type SearchCommand struct {
	global   *globalOptions
	language string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(global *globalOptions) *SearchCommand {
	return &SearchCommand{global: global}
}

// CreateCobraCommand creates the cobra command for corpus search
func (s *SearchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <file>",
		Short: "Search the reference corpus for similar code",
		Long: `Score a file against every corpus entry and list the closest matches.

Entries scoring below the report floor are never listed. When the language
is given explicitly only entries of that language are considered; with
auto-detection the whole corpus is searched.

Examples:
  # Search the bundled sample corpus
  plagscan search submission.py

  # Search a persistent corpus and show the 3 best matches as JSON
  plagscan search --corpus-path corpus.db --top-k 3 --format json main.go`,
		Args: cobra.ExactArgs(1),
		RunE: s.runSearch,
	}

	cmd.Flags().StringVarP(&s.language, "language", "l", "", "Language of the file (default: auto)")
	cmd.Flags().IntVarP(&s.global.overrides.TopK, config.FlagTopK, "k", domain.DefaultTopK, "Maximum number of matches")

	return cmd
}

// runSearch executes the search command
func (s *SearchCommand) runSearch(cmd *cobra.Command, args []string) error {
	lang, err := parseLanguageFlag(s.language)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := s.global.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	svc, err := env.corpusService(ctx)
	if err != nil {
		return err
	}
	useCase := app.NewSearchUseCase(svc, service.NewFileReader(), env.formatter)

	var resp *domain.SearchResponse
	err = s.global.writeReport(cmd, env.format, func(w io.Writer) error {
		var execErr error
		resp, execErr = useCase.Execute(ctx, app.SearchInput{
			Path:         args[0],
			Language:     lang,
			TopK:         env.cfg.Corpus.DefaultTopK,
			OutputFormat: env.format,
			OutputWriter: w,
			Stdin:        cmd.InOrStdin(),
		})
		return execErr
	})
	if err != nil {
		return err
	}
	if len(resp.Matches) == 0 {
		return nil
	}
	return s.global.checkFailOn(resp.RiskLevel)
}

// NewSearchCmd creates and returns the search cobra command
func NewSearchCmd(global *globalOptions) *cobra.Command {
	return NewSearchCommand(global).CreateCobraCommand()
}
