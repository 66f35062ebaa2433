// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package validator parses and checks the textual payload-size inputs before
// they reach the packing engine.
package validator

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoSizes indicates an input that contains no payload sizes at all.
var ErrNoSizes = errors.New("no payload sizes supplied")

// ParseSizes parses a comma-separated list of byte sizes. Underscores are
// allowed as digit separators ("131_072") and whitespace around entries is
// ignored. Range checks against blob capacity are left to the packing engine
// so the error carries the payload index.
func ParseSizes(list string) ([]int, error) {
	entries := strings.Split(list, ",")
	sizes := make([]int, 0, len(entries))
	for _, entry := range entries {
		entry = strings.ReplaceAll(strings.TrimSpace(entry), "_", "")
		if entry == "" {
			continue
		}
		size, err := strconv.Atoi(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid payload size %q", entry)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, ErrNoSizes
	}
	return sizes, nil
}

// ReadSizesFile reads one payload size per line. Blank lines and lines
// starting with # are skipped.
func ReadSizesFile(path string) ([]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sizes file %s", path)
	}
	var sizes []int
	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), "_", "")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		size, err := strconv.Atoi(line)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid payload size %q on line %d", line, i+1)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, errors.Wrapf(ErrNoSizes, "file %s", path)
	}
	return sizes, nil
}

// ValidateEndpoint checks that an RPC endpoint was supplied.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New("RPC endpoint is empty; set --endpoint, RPC_URL or run \"blobctl config set endpoint\"")
	}
	return nil
}
