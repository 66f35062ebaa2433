// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package util

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
)

// Endpoint resolves the RPC endpoint to use: the flag value when set, then
// the persisted CLI config, then the RPC_URL environment variable.
func Endpoint(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if config.ReadConfig.Endpoint != "" {
		return config.ReadConfig.Endpoint
	}
	return os.Getenv("RPC_URL")
}

// ExecuteCmd executes cmd with args, and returns the command output and error
func ExecuteCmd(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
