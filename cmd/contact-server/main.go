package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootOptions — глобальные флаги, общие для всех подкоманд.
type rootOptions struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd собирает дерево команд. Без подкоманды запускается HTTP-сервер.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "contact-server",
		Short: "Contact form served over HTTP or in the terminal",
		Long: `contact-server serves a contact form that validates first name, last name,
email and an optional message, and shows the submitted values after a
successful submit.

Run without arguments to start the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newTUICmd(),
		newValidateCmd(),
	)
	return root
}
