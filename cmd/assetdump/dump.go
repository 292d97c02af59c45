package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetdecode/internal/archive"
	"github.com/joshuapare/assetdecode/internal/catalog"
	"github.com/joshuapare/assetdecode/pkg/assetdecode"
	"github.com/joshuapare/assetdecode/pkg/emit"
)

var dumpShowTrail bool

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Decode a single asset file and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().BoolVar(&dumpShowTrail, "trail", false, "Print the decode breadcrumb trail on failure")
	return cmd
}

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	res, err := archive.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer res.Close()

	s, r, err := catalog.Build()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	var buf bytes.Buffer
	emitter, err := emit.DefaultRegistry().New(format, &buf)
	if err != nil {
		return err
	}

	printVerbose("decoding %s against catalog version %s\n", path, catalog.Version)

	decodeResult := assetdecode.Decode(s, r, res.Bytes(), res.Filename(), emitter, assetdecode.Options{
		CollectDiagnostics: dumpShowTrail,
	})

	fmt.Print(buf.String())

	if !decodeResult.OK {
		if dumpShowTrail {
			for _, b := range decodeResult.Trail {
				printInfo("  at %s.%s primary=%d secondary=%d\n", b.Struct, b.Member, b.Primary, b.Secondary)
			}
		}
		return fmt.Errorf("decode %s: %w", path, decodeResult.Err)
	}
	return nil
}
