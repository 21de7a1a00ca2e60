package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/plagscan/domain"
)

// NewLanguagesCmd creates and returns the languages cobra command
func NewLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, lang := range domain.SupportedLanguages {
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}
			return nil
		},
	}
}
