// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format persistent flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all commands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = ` █████╗ ███╗   ██╗██╗  ██╗██╗██╗    ██╗ ██████╗ ██████╗ ██████╗
██╔══██╗████╗  ██║██║ ██╔╝██║██║    ██║██╔═══██╗██╔══██╗██╔══██╗
███████║██╔██╗ ██║█████╔╝ ██║██║ █╗ ██║██║   ██║██████╔╝██║  ██║
██╔══██║██║╚██╗██║██╔═██╗ ██║██║███╗██║██║   ██║██╔══██╗██║  ██║
██║  ██║██║ ╚═╝ ██║██║  ██╗██║╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝
╚═╝  ╚═╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝ ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ankiword",
		Short: "LLM-routed flashcard builder for Anki",
		Long: banner + `

ankiword classifies a word with an LLM, generates a category-shaped
flashcard, verifies it, and files it in Anki through AnkiConnect.

Run 'ankiword add <word>' to file a card, 'ankiword history' to see
recent additions, or 'ankiword mcp' to serve the pipeline to agents.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
