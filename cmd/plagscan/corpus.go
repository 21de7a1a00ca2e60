package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/app"
	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/corpus"
	"github.com/ludo-technologies/plagscan/service"
)

// CorpusCommand represents the corpus command group
type CorpusCommand struct {
	global *globalOptions

	language        string
	description     string
	source          string
	recursive       bool
	includePatterns []string
	excludePatterns []string
}

// NewCorpusCommand creates a new corpus command
func NewCorpusCommand(global *globalOptions) *CorpusCommand {
	return &CorpusCommand{
		global:    global,
		recursive: true,
	}
}

// CreateCobraCommand creates the corpus command and its add, import and list subcommands
func (c *CorpusCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the reference corpus",
		Long: `Add reference code to the corpus and inspect its contents.

Entries are deduplicated by a hash of their normalized content. Use
--corpus-path to keep the corpus in a SQLite database between runs;
otherwise it lives only for the duration of the command.

Examples:
  # Add one reference solution
  plagscan corpus add --corpus-path corpus.db --description "Lab 3 reference" lab3.py

  # Import a directory of past submissions
  plagscan corpus import --corpus-path corpus.db --source "2024 cohort" archive/

  # List the Python entries
  plagscan corpus list --corpus-path corpus.db --language python`,
	}

	addCmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a file to the corpus",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runAdd,
	}
	addCmd.Flags().StringVarP(&c.language, "language", "l", "", "Language of the file (default: auto)")
	addCmd.Flags().StringVar(&c.description, "description", "", "Entry description (default: file name)")
	addCmd.Flags().StringVar(&c.source, "source", "", "Where the code came from")

	importCmd := &cobra.Command{
		Use:   "import <paths...>",
		Short: "Add every source file under the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runImport,
	}
	importCmd.Flags().StringVarP(&c.language, "language", "l", "", "Language of every file (default: auto)")
	importCmd.Flags().StringVar(&c.source, "source", "", "Source recorded on every entry (default: file path)")
	importCmd.Flags().BoolVarP(&c.recursive, "recursive", "r", true, "Recurse into subdirectories")
	importCmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "Glob patterns of files to include")
	importCmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Glob patterns of files to exclude")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List corpus entries",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}
	listCmd.Flags().StringVarP(&c.language, "language", "l", "", "Only list entries of this language")

	cmd.AddCommand(addCmd, importCmd, listCmd)
	return cmd
}

// open prepares the runtime and the corpus use case for a subcommand
func (c *CorpusCommand) open(cmd *cobra.Command, progress domain.ProgressManager) (*runtimeEnv, *app.CorpusUseCase, error) {
	ctx := cmd.Context()
	env, err := c.global.setup(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	svc, err := env.corpusService(ctx)
	if err != nil {
		env.Close()
		return nil, nil, err
	}
	if env.cfg.Corpus.Store == corpus.StoreMemory && cmd.Name() != "list" {
		slog.Warn("corpus is in memory and will not persist; use --corpus-path to keep entries")
	}
	useCase := app.NewCorpusUseCase(svc, svc, service.NewFileReader(), env.formatter, progress)
	return env, useCase, nil
}

// runAdd executes corpus add
func (c *CorpusCommand) runAdd(cmd *cobra.Command, args []string) error {
	lang, err := parseLanguageFlag(c.language)
	if err != nil {
		return err
	}
	env, useCase, err := c.open(cmd, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	result, err := useCase.Add(cmd.Context(), app.CorpusAddInput{
		Path:        args[0],
		Language:    lang,
		Description: c.description,
		Source:      c.source,
		Stdin:       cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}

	return c.global.writeReport(cmd, env.format, func(w io.Writer) error {
		if env.format != domain.OutputFormatText {
			return writeStructured(w, env.format, result)
		}
		if result.Accepted {
			_, err := fmt.Fprintf(w, "Added entry %d (%s, %s)\n", result.EntryID, result.Language, shortHash(result.ContentHash))
			return err
		}
		_, err := fmt.Fprintf(w, "Not added: identical content is already in the corpus (%s)\n", shortHash(result.ContentHash))
		return err
	})
}

// runImport executes corpus import
func (c *CorpusCommand) runImport(cmd *cobra.Command, args []string) error {
	lang, err := parseLanguageFlag(c.language)
	if err != nil {
		return err
	}
	progress := service.NewProgressManager("Importing files")
	defer progress.Close()

	env, useCase, err := c.open(cmd, progress)
	if err != nil {
		return err
	}
	defer env.Close()

	result, err := useCase.Import(cmd.Context(), args, service.ImportOptions{
		Language:        lang,
		Source:          c.source,
		Recursive:       c.recursive,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
	})
	if err != nil {
		return err
	}

	return c.global.writeReport(cmd, env.format, func(w io.Writer) error {
		if env.format != domain.OutputFormatText {
			return writeStructured(w, env.format, result)
		}
		fmt.Fprintf(w, "Imported %d files (%d duplicates, %d failed)\n", result.Accepted, result.Duplicates, result.Failed)
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
		return nil
	})
}

// runList executes corpus list
func (c *CorpusCommand) runList(cmd *cobra.Command, args []string) error {
	lang, err := parseLanguageFlag(c.language)
	if err != nil {
		return err
	}
	env, useCase, err := c.open(cmd, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	return c.global.writeReport(cmd, env.format, func(w io.Writer) error {
		_, err := useCase.List(cmd.Context(), lang, env.format, w)
		return err
	})
}

// writeStructured renders v as JSON or YAML; CSV falls back to JSON
func writeStructured(w io.Writer, format domain.OutputFormat, v interface{}) error {
	if format == domain.OutputFormatYAML {
		return service.WriteYAML(w, v)
	}
	return service.WriteJSON(w, v)
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// NewCorpusCmd creates and returns the corpus cobra command
func NewCorpusCmd(global *globalOptions) *cobra.Command {
	return NewCorpusCommand(global).CreateCobraCommand()
}
