package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetdecode/internal/catalog"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print assetdump and catalog versions",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("assetdump %s (catalog %s)\n", rootCmd.Version, catalog.Version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
