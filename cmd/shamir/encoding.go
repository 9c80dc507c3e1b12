package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/privy-io/shamir-secret-sharing/shamir"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// bundle is the json and yaml representation of a set of shares.
type bundle struct {
	Threshold int            `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Shares    []shamir.Share `json:"shares" yaml:"shares"`
}

func writeShares(w io.Writer, format string, b bundle) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()

	default:
		bw := bufio.NewWriter(w)
		for _, share := range b.Shares {
			if _, err := fmt.Fprintln(bw, share.String()); err != nil {
				return err
			}
		}
		return bw.Flush()
	}
}

func readShares(r io.Reader, format string) (bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return bundle{}, err
	}

	var b bundle

	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &b); err != nil {
			return bundle{}, fmt.Errorf("failed to decode json shares: %w", err)
		}

	case formatYAML:
		if err := yaml.Unmarshal(data, &b); err != nil {
			return bundle{}, fmt.Errorf("failed to decode yaml shares: %w", err)
		}

	default:
		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				lines = append(lines, line)
			}
		}

		b.Shares, err = shamir.ParseShares(lines)
		if err != nil {
			return bundle{}, err
		}
	}

	return b, nil
}
