package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/schemas"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [name]",
	Short: "Print a registered JSON schema",
	Long:  "Prints the JSON schema that constrains one structured-generation call. Without a name, lists the registered schemas.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(schemas.Names(), "\n"))
		return err
	}

	s, err := schemas.Get(args[0])
	if err != nil {
		return fmt.Errorf("unknown schema %q (available: %s): %w", args[0], strings.Join(schemas.Names(), ", "), err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(s.Document))
	return err
}
