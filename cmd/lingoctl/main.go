package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lingoctl",
		Short: "Offline companion for the MultiLingo service",
		Long: `Run the string analyzer and the intent router locally, list the
supported languages, or dump the records stored in a Badger directory.

Available subcommands:
  analyze   - Compute the properties of a string
  classify  - Show the intent a chat message resolves to
  languages - List the supported languages
  inspect   - Dump stored string records`,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newLanguagesCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
