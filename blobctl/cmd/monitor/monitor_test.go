// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package monitor

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/blobctl/util"
	"github.com/zkforge/blobplan/chainfee"
)

func TestParseEndpoint(t *testing.T) {
	require := require.New(t)

	ep := parseEndpoint("mainnet=https://rpc.example.org")
	require.Equal("mainnet", ep.Name)
	require.Equal("https://rpc.example.org", ep.URL)

	ep = parseEndpoint("https://rpc.example.org")
	require.Equal("https://rpc.example.org", ep.Name)
	require.Equal("https://rpc.example.org", ep.URL)
}

func TestSettings(t *testing.T) {
	require := require.New(t)

	t.Run("flags only", func(t *testing.T) {
		_configPath = ""
		_endpoints = []string{"a=http://a.example", "b=http://b.example"}
		_highRatio, _lowRatio = 0, 0
		cfg, endpoints, err := settings()
		require.NoError(err)
		require.Equal(chainfee.DefaultMonitorConfig, cfg)
		require.Len(endpoints, 2)
	})

	t.Run("config file plus overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(os.WriteFile(path, []byte(`
monitor:
  highRatio: 4.0
  endpoints:
    - name: devnet
      url: http://devnet.example
`), 0600))
		_configPath = path
		_endpoints = nil
		_highRatio, _lowRatio = 0, 0.5
		cfg, endpoints, err := settings()
		require.NoError(err)
		require.Equal(4.0, cfg.HighRatio)
		require.Equal(0.5, cfg.LowRatio)
		require.Len(endpoints, 1)
		require.Equal("devnet", endpoints[0].Name)
	})
}

func TestMonitorCmdRequiresEndpoints(t *testing.T) {
	require := require.New(t)
	_configPath = ""
	_endpoints = nil
	_highRatio, _lowRatio = 0, 0
	_, err := util.ExecuteCmd(MonitorCmd)
	require.Error(err)
	require.Contains(err.Error(), "no endpoints")
}

func TestMonitorMessageText(t *testing.T) {
	require := require.New(t)
	output.Format = ""

	ratio := 1.05
	message := &monitorMessage{Results: []*chainfee.MonitorResult{
		{
			Name:        "mainnet",
			Network:     "Ethereum Mainnet",
			BlockNumber: 19500000,
			BaseFeeWei:  big.NewInt(30_000_000_000),
			GasPriceWei: big.NewInt(31_500_000_000),
			Ratio:       &ratio,
			Status:      chainfee.StatusHealthy,
		},
		{Name: "down", Status: chainfee.StatusUnreachable, Error: "dial failed"},
	}}
	text := message.String()
	require.Contains(text, "mainnet")
	require.Contains(text, "healthy")
	require.Contains(text, "1.05")
	require.Contains(text, "down: dial failed")
}
