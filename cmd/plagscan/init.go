package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/internal/config"
)

const defaultConfigFile = ".plagscan.toml"

// InitCommand represents the init command
type InitCommand struct {
	force bool
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a plagscan configuration file",
		Long: `Write a commented configuration file with every setting at its default.

The file is discovered automatically when plagscan runs in the same directory
or any directory below it.

Examples:
  # Create .plagscan.toml in the current directory
  plagscan init

  # Overwrite an existing file
  plagscan init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: i.runInit,
	}

	cmd.Flags().BoolVar(&i.force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	target := defaultConfigFile
	if len(args) == 1 {
		target = args[0]
	}

	configPath, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(configPath), err)
	}

	content, err := config.GenerateDefaultConfigTOML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created: %s\n", relPath)
	fmt.Fprintf(out, "\nNext steps:\n")
	fmt.Fprintf(out, "  1. Edit %s to adjust weights, thresholds and the corpus store\n", relPath)
	fmt.Fprintf(out, "  2. Run 'plagscan compare a.py b.py' to use your configuration\n")

	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
