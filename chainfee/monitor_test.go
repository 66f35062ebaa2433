// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require := require.New(t)
	cfg := DefaultMonitorConfig

	gwei := func(n int64) *big.Int {
		return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
	}

	t.Run("healthy band", func(t *testing.T) {
		status, ratio := Classify(gwei(30), gwei(31), cfg)
		require.Equal(StatusHealthy, status)
		require.NotNil(ratio)
		require.InDelta(1.0333, *ratio, 0.001)

		// exactly at the high threshold is still healthy
		status, ratio = Classify(gwei(30), gwei(60), cfg)
		require.Equal(StatusHealthy, status)
		require.InDelta(2.0, *ratio, 1e-9)
	})

	t.Run("overpriced above the high threshold", func(t *testing.T) {
		status, ratio := Classify(gwei(30), gwei(61), cfg)
		require.Equal(StatusOverpriced, status)
		require.Greater(*ratio, 2.0)
	})

	t.Run("underpriced below the low threshold", func(t *testing.T) {
		status, ratio := Classify(gwei(100), gwei(89), cfg)
		require.Equal(StatusUnderpriced, status)
		require.Less(*ratio, 0.9)
	})

	t.Run("no base fee means no EIP-1559", func(t *testing.T) {
		status, ratio := Classify(nil, gwei(10), cfg)
		require.Equal(StatusNoEIP1559, status)
		require.Nil(ratio)

		status, ratio = Classify(big.NewInt(0), gwei(10), cfg)
		require.Equal(StatusNoEIP1559, status)
		require.Nil(ratio)
	})
}

func TestMonitorConfigValidate(t *testing.T) {
	require := require.New(t)
	require.NoError(DefaultMonitorConfig.Validate())
	require.Error(MonitorConfig{HighRatio: 0, LowRatio: 0}.Validate())
	require.Error(MonitorConfig{HighRatio: 1, LowRatio: 2}.Validate())
	require.Error(MonitorConfig{HighRatio: 2, LowRatio: -0.1}.Validate())
}

func TestMonitorRunUnreachable(t *testing.T) {
	require := require.New(t)
	monitor := NewMonitor(DefaultMonitorConfig, []Endpoint{
		{Name: "bad-one", URL: "http://127.0.0.1:1"},
		{Name: "bad-two", URL: "not-a-scheme://nowhere"},
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results := monitor.Run(ctx)
	require.Len(results, 2)
	// results keep endpoint order even though probes run concurrently
	require.Equal("bad-one", results[0].Name)
	require.Equal("bad-two", results[1].Name)
	for _, res := range results {
		require.Equal(StatusUnreachable, res.Status)
		require.NotEmpty(res.Error)
	}
}
