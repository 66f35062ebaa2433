// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package profile implements the recent-block fee profiling command.
package profile

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/blobctl/util"
	"github.com/zkforge/blobplan/blobctl/validator"
	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/pkg/unit"
)

// Multi-language support
var _profileCmdShorts = map[config.Language]string{
	config.English: "Profile base fees over recent blocks",
	config.Chinese: "分析最近区块的基础费用",
}

var (
	_endpoint  string
	_blocks    uint64
	_step      uint64
	_cacheSize int
	_timeout   time.Duration
)

// ProfileCmd represents the profile command
var ProfileCmd = &cobra.Command{
	Use:   "profile [-e ENDPOINT] [--blocks N] [--step N]",
	Short: config.TranslateInLang(_profileCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := profile()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	ProfileCmd.Flags().StringVarP(&_endpoint, "endpoint", "e", "", "RPC endpoint")
	ProfileCmd.Flags().Uint64Var(&_blocks, "blocks", 300, "how many recent blocks to cover")
	ProfileCmd.Flags().Uint64Var(&_step, "step", 3, "sample every step-th block")
	ProfileCmd.Flags().IntVar(&_cacheSize, "cache-size", 1024, "header cache entries")
	ProfileCmd.Flags().DurationVar(&_timeout, "timeout", 60*time.Second, "RPC timeout for the whole scan")
}

type profileMessage struct {
	*chainfee.FeeProfile
}

func (m *profileMessage) String() string {
	if output.Format == "" {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "%s, blocks %d-%d (every %d), %d sampled\n\n",
			m.Network, m.FromBlock, m.ToBlock, m.Step, m.Sampled)
		tb := table.New("Metric", "Base Fee (gwei)")
		tb.WithWriter(&buf)
		stats := m.BaseFee
		tb.AddRow("min", unit.GweiToString(stats.MinWei))
		tb.AddRow("p25", unit.GweiToString(stats.P25Wei))
		tb.AddRow("p50", unit.GweiToString(stats.P50Wei))
		tb.AddRow("avg", unit.GweiToString(stats.AvgWei))
		tb.AddRow("p75", unit.GweiToString(stats.P75Wei))
		tb.AddRow("p95", unit.GweiToString(stats.P95Wei))
		tb.AddRow("max", unit.GweiToString(stats.MaxWei))
		tb.Print()
		return buf.String()
	}
	return output.FormatString(output.Result, m)
}

func profile() (string, error) {
	endpoint := util.Endpoint(_endpoint)
	if err := validator.ValidateEndpoint(endpoint); err != nil {
		return "", output.NewError(output.ConfigError, "", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), _timeout)
	defer cancel()
	client, err := chainfee.Dial(ctx, endpoint)
	if err != nil {
		return "", output.NewError(output.NetworkError, "failed to connect to endpoint", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return "", output.NewError(output.NetworkError, "failed to fetch chain ID", err)
	}
	profiler := chainfee.NewProfiler(client, chainID, _cacheSize)
	feeProfile, err := profiler.Profile(ctx, _blocks, _step)
	if err != nil {
		return "", output.NewError(output.NetworkError, "failed to profile blocks", err)
	}
	return (&profileMessage{feeProfile}).String(), nil
}
