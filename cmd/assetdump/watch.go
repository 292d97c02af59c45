package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/joshuapare/assetdecode/internal/archive"
	"github.com/joshuapare/assetdecode/internal/catalog"
	"github.com/joshuapare/assetdecode/pkg/assetdecode"
	"github.com/joshuapare/assetdecode/pkg/emit"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-decode a file each time it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
}

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, r, err := catalog.Build()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	decodeOnce := func() {
		res, err := archive.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
			return
		}
		defer res.Close()

		var buf bytes.Buffer
		emitter, err := emit.DefaultRegistry().New(format, &buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}

		result := assetdecode.Decode(s, r, res.Bytes(), res.Filename(), emitter, assetdecode.Options{})
		fmt.Print(buf.String())
		if !result.OK {
			fmt.Fprintf(os.Stderr, "decode %s: %v\n", path, result.Err)
		}
	}

	printInfo("watching %s (ctrl-c to stop)\n", path)
	decodeOnce()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				printVerbose("change detected: %s\n", ev.Name)
				decodeOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
