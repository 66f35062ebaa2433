// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"context"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iotexproject/go-pkgs/cache"

	"github.com/zkforge/blobplan/pkg/log"
)

// ErrNoSamples indicates a profile run that collected nothing.
var ErrNoSamples = errors.New("no blocks sampled")

// HeaderSource is the slice of the RPC surface the profiler needs.
type HeaderSource interface {
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// FeeStats summarizes one fee series across the sampled blocks, all in wei.
type FeeStats struct {
	MinWei *big.Int `json:"minWei"`
	MaxWei *big.Int `json:"maxWei"`
	AvgWei *big.Int `json:"avgWei"`
	P25Wei *big.Int `json:"p25Wei"`
	P50Wei *big.Int `json:"p50Wei"`
	P75Wei *big.Int `json:"p75Wei"`
	P95Wei *big.Int `json:"p95Wei"`
}

// FeeProfile is the result of scanning a block range.
type FeeProfile struct {
	ChainID   uint64    `json:"chainId"`
	Network   string    `json:"network"`
	FromBlock uint64    `json:"fromBlock"`
	ToBlock   uint64    `json:"toBlock"`
	Step      uint64    `json:"step"`
	Sampled   int       `json:"sampled"`
	BaseFee   *FeeStats `json:"baseFee"`
}

// Profiler scans recent block headers and summarizes base fees. Headers are
// immutable once mined, so a small LRU keeps repeated runs over overlapping
// ranges from refetching.
type Profiler struct {
	source  HeaderSource
	chainID uint64
	headers cache.LRUCache
}

// NewProfiler creates a profiler over the given header source.
func NewProfiler(source HeaderSource, chainID uint64, cacheSize int) *Profiler {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	return &Profiler{
		source:  source,
		chainID: chainID,
		headers: cache.NewThreadSafeLruCache(cacheSize),
	}
}

// Profile samples every step-th block among the most recent blocks and
// summarizes their base fees. Blocks without a base fee are skipped, not
// counted as zero.
func (p *Profiler) Profile(ctx context.Context, blocks, step uint64) (*FeeProfile, error) {
	if blocks == 0 {
		return nil, errors.Wrap(ErrNoSamples, "block count is zero")
	}
	if step == 0 {
		step = 1
	}
	head, err := p.source.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	from := uint64(0)
	if head >= blocks {
		from = head - blocks + 1
	}

	var baseFees []*big.Int
	for number := head; ; number -= step {
		header, err := p.header(ctx, number)
		if err != nil {
			return nil, err
		}
		if header.BaseFee != nil {
			baseFees = append(baseFees, new(big.Int).Set(header.BaseFee))
		}
		if number < from+step {
			break
		}
	}
	if len(baseFees) == 0 {
		return nil, errors.Wrapf(ErrNoSamples, "blocks %d to %d carry no base fee", from, head)
	}
	log.L().Debug("profiled block range",
		zap.Uint64("from", from),
		zap.Uint64("to", head),
		zap.Int("sampled", len(baseFees)))
	return &FeeProfile{
		ChainID:   p.chainID,
		Network:   NetworkName(p.chainID),
		FromBlock: from,
		ToBlock:   head,
		Step:      step,
		Sampled:   len(baseFees),
		BaseFee:   Summarize(baseFees),
	}, nil
}

func (p *Profiler) header(ctx context.Context, number uint64) (*types.Header, error) {
	if cached, ok := p.headers.Get(number); ok {
		return cached.(*types.Header), nil
	}
	header, err := p.source.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return nil, err
	}
	p.headers.Add(number, header)
	return header, nil
}

// Summarize computes min, max, average and percentiles over a non-empty fee
// series. The input slice is not modified.
func Summarize(fees []*big.Int) *FeeStats {
	sorted := make([]*big.Int, len(fees))
	copy(sorted, fees)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })

	sum := new(big.Int)
	for _, fee := range sorted {
		sum.Add(sum, fee)
	}
	return &FeeStats{
		MinWei: new(big.Int).Set(sorted[0]),
		MaxWei: new(big.Int).Set(sorted[len(sorted)-1]),
		AvgWei: sum.Div(sum, big.NewInt(int64(len(sorted)))),
		P25Wei: Percentile(sorted, 25),
		P50Wei: Percentile(sorted, 50),
		P75Wei: Percentile(sorted, 75),
		P95Wei: Percentile(sorted, 95),
	}
}

// Percentile picks the nearest-rank percentile from an ascending-sorted
// series. p is clamped to [0, 100].
func Percentile(sorted []*big.Int, p float64) *big.Int {
	if len(sorted) == 0 {
		return nil
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	idx := int(p / 100 * float64(len(sorted)-1))
	return new(big.Int).Set(sorted[idx])
}
