package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// readInput reads the --in file or stdin.
func readInput() ([]byte, error) {
	if opts.Input != "" {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

// marshal encodes v as indented JSON or as YAML. Values are taken through
// their JSON form first so that GeoJSON marshalers shape the YAML as well.
func marshal(v any, format string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil || format != "yaml" {
		return data, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// writeStructured marshals v in the selected format and writes it out.
func writeStructured(v any) error {
	data, err := marshal(v, opts.Format)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return writeOutput(data)
}

// writeOutput writes to the --out file or stdout.
func writeOutput(data []byte) error {
	if opts.Output == "" {
		_, err := os.Stdout.Write(data)
		if err == nil && (len(data) == 0 || data[len(data)-1] != '\n') {
			_, err = os.Stdout.Write([]byte{'\n'})
		}
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	log.Info().
		Str("path", opts.Output).
		Int("bytes", len(data)).
		Msg("Output written")
	return nil
}
