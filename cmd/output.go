package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type encoder interface {
	Encode(v any) error
}

// newEncoder returns a JSON or YAML encoder writing to w
func newEncoder(format string, w io.Writer) (encoder, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc, nil
	default:
		return nil, fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", format)
	}
}

// writeEntries prints entries in the selected output format
func writeEntries(w io.Writer, entries []map[string]any) error {
	enc, err := newEncoder(outputFormat, w)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []map[string]any{}
	}
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if closer, ok := enc.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
