package main

import (
	"github.com/spf13/cobra"

	"tsiface/internal/lsp"
	"tsiface/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server over stdio",
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().Bool("debug", false, "log every JSON-RPC message")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	server := lsp.NewServer(lsp.Options{Parse: opts, Version: version.Version, Debug: debug})
	return server.RunStdio()
}
