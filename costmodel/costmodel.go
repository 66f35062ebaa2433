// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package costmodel prices a packing result under a fee snapshot. It compares
// three publication channels: execution gas, EIP-4844 blobs and worst-case
// calldata. All arithmetic is exact integer wei; rounding happens only when a
// renderer formats the figures.
package costmodel

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/packing"
)

const (
	// CalldataGasPerByte is the worst-case non-zero-byte calldata price. Using
	// it for every byte makes the calldata figure a conservative upper bound.
	CalldataGasPerByte = params.TxDataNonZeroGasEIP2028
	// BlobGasPerBlob is the blob gas charged per blob regardless of fill. A
	// half-empty blob costs the same as a full one, which is exactly the waste
	// this tool exists to surface.
	BlobGasPerBlob = params.BlobTxBlobGasPerBlob
)

// Advisory notes appended to a degraded but valid estimate.
const (
	noteNoBlobFee  = "blob base fee unavailable; pass --blob-base-fee-gwei to override"
	noteNoBaseFee  = "base fee is zero; endpoint may not support EIP-1559"
	noteNoPayloads = "no payloads supplied; all costs are zero"
)

// ErrNilSnapshot indicates an estimate invoked without a fee snapshot.
var ErrNilSnapshot = errors.New("fee snapshot is nil")

// Breakdown is the cost comparison for one packing under one snapshot.
// BlobCostWei is nil when the snapshot carries no blob base fee or no blobs
// are used; the ratio and utilization fields are nil whenever their
// denominators are undefined.
type Breakdown struct {
	ExecutionCostWei *big.Int
	BlobCostWei      *big.Int
	CalldataCostWei  *big.Int

	TotalPayloadBytes   int
	BlobCount           int
	TotalFreeBytes      int
	AvgBlobUtilization  *float64
	BlobToCalldataRatio *float64

	// Notes flag degraded-computation conditions for the report layer.
	Notes []string
}

// Estimate prices the given packing under the snapshot. gasUsed is the
// execution gas unrelated to data publication; a negative value is clamped to
// zero rather than rejected. Snapshot validation failures abort with no
// partial result.
func Estimate(bins []*packing.Bin, sizes []int, snap *chainfee.Snapshot, gasUsed int64) (*Breakdown, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if gasUsed < 0 {
		gasUsed = 0
	}

	totalBytes := packing.TotalBytes(sizes)
	effective := snap.EffectiveWei()
	breakdown := &Breakdown{
		ExecutionCostWei:  ExecutionCost(effective, uint64(gasUsed)),
		CalldataCostWei:   CalldataCost(effective, totalBytes),
		TotalPayloadBytes: totalBytes,
		BlobCount:         len(bins),
		TotalFreeBytes:    packing.TotalFreeBytes(bins),
	}

	if len(sizes) == 0 {
		breakdown.Notes = append(breakdown.Notes, noteNoPayloads)
	}
	if snap.BaseFeeWei.Sign() == 0 {
		breakdown.Notes = append(breakdown.Notes, noteNoBaseFee)
	}

	if len(bins) > 0 {
		utilization := float64(totalBytes) / float64(len(bins)*packing.BlobCapacityBytes)
		breakdown.AvgBlobUtilization = &utilization

		if snap.BlobBaseFeeWei == nil {
			breakdown.Notes = append(breakdown.Notes, noteNoBlobFee)
		} else {
			breakdown.BlobCostWei = BlobCost(snap.BlobBaseFeeWei, len(bins))
			if breakdown.CalldataCostWei.Sign() > 0 {
				ratio, _ := new(big.Float).Quo(
					new(big.Float).SetInt(breakdown.BlobCostWei),
					new(big.Float).SetInt(breakdown.CalldataCostWei),
				).Float64()
				breakdown.BlobToCalldataRatio = &ratio
			}
		}
	}
	return breakdown, nil
}

// ExecutionCost returns effectiveWei * gasUsed.
func ExecutionCost(effectiveWei *big.Int, gasUsed uint64) *big.Int {
	return mulWei(effectiveWei, gasUsed)
}

// BlobCost returns blobBaseFeeWei * blobCount * BlobGasPerBlob, the flat
// per-blob charge of EIP-4844.
func BlobCost(blobBaseFeeWei *big.Int, blobCount int) *big.Int {
	if blobCount < 0 {
		blobCount = 0
	}
	return mulWei(blobBaseFeeWei, uint64(blobCount)*BlobGasPerBlob)
}

// CalldataCost returns effectiveWei * totalBytes * CalldataGasPerByte, the
// worst-case cost of shipping the same bytes as calldata.
func CalldataCost(effectiveWei *big.Int, totalBytes int) *big.Int {
	if totalBytes < 0 {
		totalBytes = 0
	}
	return mulWei(effectiveWei, uint64(totalBytes)*CalldataGasPerByte)
}

// mulWei multiplies a non-negative wei amount by a gas-unit count. Fee values
// fit 256 bits with room to spare, so uint256 keeps this allocation-light.
func mulWei(feeWei *big.Int, units uint64) *big.Int {
	fee, overflow := uint256.FromBig(feeWei)
	if overflow {
		// not reachable for sane fee inputs
		panic(fmt.Sprintf("fee overflows 256 bits: %s", feeWei))
	}
	return new(uint256.Int).Mul(fee, uint256.NewInt(units)).ToBig()
}
