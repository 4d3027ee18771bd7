package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ai-readme %s\n", version.GetFullVersion())
		},
	}
}
