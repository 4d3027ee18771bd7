package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/section"
	"github.com/ai-readme/ai-readme/internal/ui"
)

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections that can be generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			styles := ui.NewStyles(deps.Theme)
			var rows [][]string
			for _, d := range section.All() {
				rows = append(rows, []string{string(d.ID), d.Name, yesNo(d.Default), yesNo(d.Required), d.Description})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), styles.Table([]string{"ID", "Name", "Default", "Required", "Description"}, rows))
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
