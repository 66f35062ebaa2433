// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	require := require.New(t)

	sizes, err := ParseSizes("64000,90000")
	require.NoError(err)
	require.Equal([]int{64000, 90000}, sizes)

	sizes, err = ParseSizes(" 131_072 , 1 ,")
	require.NoError(err)
	require.Equal([]int{131072, 1}, sizes)

	// negative sizes parse here; the packing engine rejects them by index
	sizes, err = ParseSizes("-5")
	require.NoError(err)
	require.Equal([]int{-5}, sizes)

	_, err = ParseSizes("12x")
	require.Error(err)
	require.Contains(err.Error(), `"12x"`)

	_, err = ParseSizes(" , ")
	require.Equal(ErrNoSizes, errors.Cause(err))
}

func TestReadSizesFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "sizes.txt")
	require.NoError(os.WriteFile(path, []byte("# proof batch 42\n64000\n\n90_000\n"), 0600))

	sizes, err := ReadSizesFile(path)
	require.NoError(err)
	require.Equal([]int{64000, 90000}, sizes)

	require.NoError(os.WriteFile(path, []byte("64000\noops\n"), 0600))
	_, err = ReadSizesFile(path)
	require.Error(err)
	require.Contains(err.Error(), "line 2")

	require.NoError(os.WriteFile(path, []byte("# nothing\n"), 0600))
	_, err = ReadSizesFile(path)
	require.Equal(ErrNoSizes, errors.Cause(err))

	_, err = ReadSizesFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(err)
}

func TestValidateEndpoint(t *testing.T) {
	require := require.New(t)
	require.Error(ValidateEndpoint(""))
	require.NoError(ValidateEndpoint("https://rpc.example.org"))
}
