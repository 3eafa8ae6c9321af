package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fini-net/gh-hookwatch/internal/config"
	"github.com/fini-net/gh-hookwatch/internal/events"
	"github.com/fini-net/gh-hookwatch/internal/poll"
	"github.com/fini-net/gh-hookwatch/internal/render"
	"github.com/fini-net/gh-hookwatch/internal/source"
	"github.com/fini-net/gh-hookwatch/internal/tui"
	"gopkg.in/yaml.v3"
)

// runSnapshot fetches once and prints the events (non-interactive mode)
func runSnapshot(ctx context.Context, src source.Source, format string, stdout, stderr io.Writer) int {
	result, err := src.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(stderr, poll.FetchErrorMessage)
		return 1
	}

	if err := writeEvents(stdout, format, result.Events); err != nil {
		fmt.Fprintf(stderr, "Failed to write events: %v\n", err)
		return 1
	}

	return 0
}

// writeEvents prints one line per event for text, or the raw list for json and yaml
func writeEvents(w io.Writer, format string, list []events.Event) error {
	if list == nil {
		list = []events.Event{}
	}

	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()

	default:
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, tui.EmptyText)
			return err
		}
		for _, e := range list {
			if _, err := fmt.Fprintln(w, render.FormatEvent(e).String()); err != nil {
				return err
			}
		}
		return nil
	}
}
