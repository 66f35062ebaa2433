// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package output

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	require := require.New(t)

	err := NewError(ValidationError, "bad input", nil)
	message, ok := err.(ErrorMessage)
	require.True(ok)
	require.Equal(ValidationError, message.Code)
	require.Equal("bad input", message.Info)

	t.Run("wraps a plain error", func(t *testing.T) {
		err := NewError(NetworkError, "failed to dial", errors.New("connection refused"))
		message := err.(ErrorMessage)
		require.Equal(NetworkError, message.Code)
		require.Equal("failed to dial: connection refused", message.Info)
	})

	t.Run("zero code keeps the previous code", func(t *testing.T) {
		inner := NewError(ReadFileError, "no such file", nil)
		err := NewError(0, "failed to load sizes", inner)
		message := err.(ErrorMessage)
		require.Equal(ReadFileError, message.Code)
		require.Equal("failed to load sizes: no such file", message.Info)
	})

	t.Run("non-zero code overrides", func(t *testing.T) {
		inner := NewError(ReadFileError, "no such file", nil)
		err := NewError(InputError, "", inner)
		message := err.(ErrorMessage)
		require.Equal(InputError, message.Code)
		require.Equal("no such file", message.Info)
	})
}

func TestPrintError(t *testing.T) {
	require := require.New(t)
	Format = ""

	require.NoError(PrintError(nil))

	err := PrintError(NewError(ValidationError, "bad input", nil))
	require.Error(err)
	require.Contains(err.Error(), "bad input")

	t.Run("json format prints instead of returning", func(t *testing.T) {
		Format = "json"
		defer func() { Format = "" }()
		require.NoError(PrintError(NewError(ValidationError, "bad input", nil)))
	})
}

func TestJSONString(t *testing.T) {
	require := require.New(t)
	require.Contains(JSONString(map[string]int{"a": 1}), `"a": 1`)
}
