// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package fee implements the fee-market inspection commands.
package fee

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/blobctl/util"
	"github.com/zkforge/blobplan/blobctl/validator"
	"github.com/zkforge/blobplan/chainfee"
)

// Multi-language support
var _feeCmdShorts = map[config.Language]string{
	config.English: "Inspect the fee market of an EVM chain",
	config.Chinese: "查看EVM链的费用市场",
}

var (
	_endpoint string
	_timeout  time.Duration
)

// FeeCmd represents the fee command
var FeeCmd = &cobra.Command{
	Use:   "fee",
	Short: config.TranslateInLang(_feeCmdShorts),
}

func init() {
	FeeCmd.AddCommand(_feeSnapshotCmd)
	FeeCmd.AddCommand(_feeGasCmd)
	FeeCmd.AddCommand(_feeBlobsCmd)
	FeeCmd.PersistentFlags().StringVarP(&_endpoint, "endpoint", "e", "", "RPC endpoint")
	FeeCmd.PersistentFlags().DurationVar(&_timeout, "timeout", 20*time.Second, "RPC timeout")
}

// dial connects to the resolved endpoint and hands the client plus a
// cancelable context to fn.
func dial(fn func(ctx context.Context, client *chainfee.Client) error) error {
	endpoint := util.Endpoint(_endpoint)
	if err := validator.ValidateEndpoint(endpoint); err != nil {
		return output.NewError(output.ConfigError, "", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), _timeout)
	defer cancel()
	client, err := chainfee.Dial(ctx, endpoint)
	if err != nil {
		return output.NewError(output.NetworkError, "failed to connect to endpoint", err)
	}
	defer client.Close()
	return fn(ctx, client)
}
