package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetdecode/internal/catalog"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the registered structs and file bindings",
		RunE:  runSchema,
	}
}

func init() {
	rootCmd.AddCommand(newSchemaCmd())
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, r, err := catalog.Build()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	printInfo("catalog version: %s\n\n", catalog.Version)

	printInfo("structs:\n")
	for _, name := range s.Structs.Names() {
		st, _ := s.Structs.Lookup(name)
		printInfo("  %s (%d bytes)\n", st.Name, st.FixedSize)
		for _, m := range st.Members {
			printInfo("    %s: %s @%d\n", m.Name, m.TypeName, m.Offset)
		}
	}

	printInfo("\nextensions:\n")
	for _, ext := range r.Extensions() {
		printInfo("  %s\n", ext)
	}

	printInfo("\nexact names:\n")
	for _, name := range r.ExactNames() {
		printInfo("  %s\n", name)
	}

	return nil
}
