// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zkforge/blobplan/pkg/log"
)

// Status classifies a chain's gas price against its base fee.
type Status string

// Monitor statuses
const (
	StatusHealthy     Status = "healthy"
	StatusOverpriced  Status = "overpriced"
	StatusUnderpriced Status = "underpriced"
	StatusNoEIP1559   Status = "no_eip1559"
	StatusUnreachable Status = "unreachable"
)

// Endpoint names one RPC endpoint to probe.
type Endpoint struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// MonitorConfig holds the classification thresholds.
type MonitorConfig struct {
	// HighRatio marks a chain overpriced when gasPrice/baseFee exceeds it
	HighRatio float64 `json:"highRatio" yaml:"highRatio"`
	// LowRatio marks a chain underpriced when gasPrice/baseFee falls below it
	LowRatio float64 `json:"lowRatio" yaml:"lowRatio"`
}

// DefaultMonitorConfig mirrors the thresholds the tool always shipped with:
// above 2x base fee is congested or overpriced, below 0.9x is underpriced.
var DefaultMonitorConfig = MonitorConfig{
	HighRatio: 2.0,
	LowRatio:  0.9,
}

// MonitorResult is one endpoint's probe outcome. Error is set (and Status is
// unreachable) when the probe failed; the other probes are unaffected.
type MonitorResult struct {
	Name        string   `json:"name"`
	Endpoint    string   `json:"endpoint"`
	ChainID     uint64   `json:"chainId,omitempty"`
	Network     string   `json:"network,omitempty"`
	BlockNumber uint64   `json:"blockNumber,omitempty"`
	BaseFeeWei  *big.Int `json:"baseFeeWei,omitempty"`
	GasPriceWei *big.Int `json:"gasPriceWei,omitempty"`
	Ratio       *float64 `json:"ratio,omitempty"`
	Status      Status   `json:"status"`
	Error       string   `json:"error,omitempty"`
}

// Classify rates a gas price against a base fee. A nil or zero base fee means
// the chain does not speak EIP-1559 and no ratio is defined.
func Classify(baseFee, gasPrice *big.Int, cfg MonitorConfig) (Status, *float64) {
	if baseFee == nil || baseFee.Sign() == 0 || gasPrice == nil {
		return StatusNoEIP1559, nil
	}
	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(gasPrice),
		new(big.Float).SetInt(baseFee),
	).Float64()
	switch {
	case ratio > cfg.HighRatio:
		return StatusOverpriced, &ratio
	case ratio < cfg.LowRatio:
		return StatusUnderpriced, &ratio
	default:
		return StatusHealthy, &ratio
	}
}

// Monitor probes a set of endpoints and classifies each chain's fee market.
type Monitor struct {
	cfg       MonitorConfig
	endpoints []Endpoint
}

// NewMonitor creates a monitor over the given endpoints.
func NewMonitor(cfg MonitorConfig, endpoints []Endpoint) *Monitor {
	return &Monitor{cfg: cfg, endpoints: endpoints}
}

// Run probes all endpoints concurrently. Every probe is an isolated
// invocation with its own connection; results come back in endpoint order
// and per-endpoint failures never abort the run.
func (m *Monitor) Run(ctx context.Context) []*MonitorResult {
	results := make([]*MonitorResult, len(m.endpoints))
	g, ctx := errgroup.WithContext(ctx)
	for i, ep := range m.endpoints {
		i, ep := i, ep
		g.Go(func() error {
			results[i] = m.probe(ctx, ep)
			return nil
		})
	}
	// probes report failures in-band
	_ = g.Wait()
	return results
}

func (m *Monitor) probe(ctx context.Context, ep Endpoint) *MonitorResult {
	res := &MonitorResult{Name: ep.Name, Endpoint: ep.URL}
	fail := func(err error) *MonitorResult {
		log.L().Warn("endpoint probe failed", zap.String("endpoint", ep.URL), zap.Error(err))
		res.Status = StatusUnreachable
		res.Error = err.Error()
		return res
	}

	client, err := Dial(ctx, ep.URL)
	if err != nil {
		return fail(err)
	}
	defer client.Close()

	snap, err := client.SnapshotLatest(ctx, big.NewInt(0), nil)
	if err != nil {
		return fail(err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return fail(err)
	}

	res.ChainID = snap.ChainID
	res.Network = snap.Network
	res.BlockNumber = snap.BlockNumber
	res.BaseFeeWei = snap.BaseFeeWei
	res.GasPriceWei = gasPrice
	res.Status, res.Ratio = Classify(snap.BaseFeeWei, gasPrice, m.cfg)
	if res.GasPriceWei.Cmp(snap.BaseFeeWei) < 0 && snap.BaseFeeWei.Sign() > 0 {
		log.L().Warn("gas price below base fee, check RPC accuracy or chain sync",
			zap.String("endpoint", ep.URL))
	}
	return res
}

// Validate checks that the monitor thresholds make sense.
func (cfg MonitorConfig) Validate() error {
	if cfg.HighRatio <= 0 || cfg.LowRatio < 0 || cfg.LowRatio >= cfg.HighRatio {
		return errors.Errorf("invalid monitor ratios: low %v, high %v", cfg.LowRatio, cfg.HighRatio)
	}
	return nil
}
