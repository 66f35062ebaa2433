// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package monitor implements the multi-chain fee health command.
package monitor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/chainfee"
	rootconfig "github.com/zkforge/blobplan/config"
	"github.com/zkforge/blobplan/pkg/unit"
)

// Multi-language support
var _monitorCmdShorts = map[config.Language]string{
	config.English: "Probe multiple chains and classify their fee markets",
	config.Chinese: "探测多条链并对其费用市场分类",
}

var (
	_endpoints  []string
	_configPath string
	_highRatio  float64
	_lowRatio   float64
	_timeout    time.Duration
)

// MonitorCmd represents the monitor command
var MonitorCmd = &cobra.Command{
	Use:   "monitor [--endpoints NAME=URL,... | --config FILE]",
	Short: config.TranslateInLang(_monitorCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := monitor()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	MonitorCmd.Flags().StringSliceVar(&_endpoints, "endpoints", nil, "endpoints to probe, each NAME=URL or a bare URL")
	MonitorCmd.Flags().StringVar(&_configPath, "config", "", "YAML config file with a monitor section")
	MonitorCmd.Flags().Float64Var(&_highRatio, "high-ratio", 0, "override the overpriced threshold")
	MonitorCmd.Flags().Float64Var(&_lowRatio, "low-ratio", 0, "override the underpriced threshold")
	MonitorCmd.Flags().DurationVar(&_timeout, "timeout", 20*time.Second, "per-run timeout")
}

type monitorMessage struct {
	Results []*chainfee.MonitorResult `json:"results"`
}

func (m *monitorMessage) String() string {
	if output.Format == "" {
		var buf bytes.Buffer
		tb := table.New("Name", "Network", "Block", "Base Fee (gwei)", "Gas Price (gwei)", "Ratio", "Status")
		tb.WithWriter(&buf)
		for _, res := range m.Results {
			baseFee, gasPrice, ratio := "-", "-", "-"
			if res.BaseFeeWei != nil {
				baseFee = unit.GweiToString(res.BaseFeeWei)
			}
			if res.GasPriceWei != nil {
				gasPrice = unit.GweiToString(res.GasPriceWei)
			}
			if res.Ratio != nil {
				ratio = fmt.Sprintf("%.2f", *res.Ratio)
			}
			tb.AddRow(res.Name, res.Network, res.BlockNumber, baseFee, gasPrice, ratio, string(res.Status))
		}
		tb.Print()
		for _, res := range m.Results {
			if res.Error != "" {
				fmt.Fprintf(&buf, "%s: %s\n", res.Name, res.Error)
			}
		}
		return buf.String()
	}
	return output.FormatString(output.Result, m)
}

func monitor() (string, error) {
	cfg, endpoints, err := settings()
	if err != nil {
		return "", err
	}
	if len(endpoints) == 0 {
		return "", output.NewError(output.FlagError, "no endpoints; set --endpoints or --config", nil)
	}
	if err := cfg.Validate(); err != nil {
		return "", output.NewError(output.ValidationError, "invalid thresholds", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), _timeout)
	defer cancel()
	results := chainfee.NewMonitor(cfg, endpoints).Run(ctx)
	return (&monitorMessage{Results: results}).String(), nil
}

// settings merges the config file, if any, with the flag overrides.
func settings() (chainfee.MonitorConfig, []chainfee.Endpoint, error) {
	cfg := chainfee.DefaultMonitorConfig
	var endpoints []chainfee.Endpoint

	if _configPath != "" {
		fileCfg, err := rootconfig.New([]string{_configPath})
		if err != nil {
			return cfg, nil, output.NewError(output.ConfigError, "failed to load config "+_configPath, err)
		}
		cfg = fileCfg.MonitorConfig()
		endpoints = fileCfg.Monitor.Endpoints
	}
	for _, entry := range _endpoints {
		endpoints = append(endpoints, parseEndpoint(entry))
	}
	if _highRatio > 0 {
		cfg.HighRatio = _highRatio
	}
	if _lowRatio > 0 {
		cfg.LowRatio = _lowRatio
	}
	return cfg, endpoints, nil
}

// parseEndpoint splits NAME=URL; a bare URL names itself.
func parseEndpoint(entry string) chainfee.Endpoint {
	if name, url, found := strings.Cut(entry, "="); found && !strings.Contains(name, "://") {
		return chainfee.Endpoint{Name: name, URL: url}
	}
	return chainfee.Endpoint{Name: entry, URL: entry}
}
