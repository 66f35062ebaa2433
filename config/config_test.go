// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/zkforge/blobplan/chainfee"
)

func TestNewDefaultConfig(t *testing.T) {
	require := require.New(t)
	cfg, err := New(nil)
	require.NoError(err)
	require.Equal("1.0", cfg.Fees.TipGwei)
	require.Equal(2.0, cfg.Monitor.HighRatio)
	require.Equal(0.9, cfg.Monitor.LowRatio)
	require.Equal(uint64(300), cfg.Profile.Blocks)
	require.Equal(uint64(3), cfg.Profile.Step)
	require.Equal(1024, cfg.Profile.FeeCacheSize)
}

func TestNewConfigWithFileOverride(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "blobplan.yaml")
	require.NoError(os.WriteFile(path, []byte(`
rpcURL: https://rpc.example.org
fees:
  tipGwei: "2.5"
  ethPriceUSD: 2500
monitor:
  highRatio: 3.0
chains:
  - chainID: 4242
    name: ZKForge Devnet
    rpcURL: https://devnet.zkforge.example
`), 0600))

	cfg, err := New([]string{path})
	require.NoError(err)
	require.Equal("https://rpc.example.org", cfg.RPCURL)
	require.Equal("2.5", cfg.Fees.TipGwei)
	require.Equal(2500.0, cfg.Fees.EthPriceUSD)
	require.Equal(3.0, cfg.Monitor.HighRatio)
	// untouched defaults survive the merge
	require.Equal(0.9, cfg.Monitor.LowRatio)
	// configured chains land in the network registry
	require.Equal("ZKForge Devnet", chainfee.NetworkName(4242))
}

func TestNewConfigEnvExpansion(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "blobplan.yaml")
	require.NoError(os.WriteFile(path, []byte("rpcURL: ${BLOBPLAN_TEST_RPC:fallback}\n"), 0600))

	cfg, err := New([]string{path})
	require.NoError(err)
	require.Equal("fallback", cfg.RPCURL)

	t.Setenv("BLOBPLAN_TEST_RPC", "https://set.example.org")
	cfg, err = New([]string{path})
	require.NoError(err)
	require.Equal("https://set.example.org", cfg.RPCURL)
}

func TestValidation(t *testing.T) {
	require := require.New(t)

	cfg := Default
	cfg.Fees.TipGwei = ""
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateFees(cfg)))

	cfg = Default
	cfg.Fees.EthPriceUSD = -1
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateFees(cfg)))

	cfg = Default
	cfg.Monitor.LowRatio = 5
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateMonitor(cfg)))

	cfg = Default
	cfg.Profile.Blocks = 0
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateProfile(cfg)))

	cfg = Default
	cfg.Profile.FeeCacheSize = 0
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateProfile(cfg)))

	require.NoError(DoNotValidate(cfg))
}
