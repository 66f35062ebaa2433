// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package report turns a packing result and its cost breakdown into renderable
// output. The Report value is the JSON shape; Text renders the same data as
// tables for terminals.
package report

import (
	"bytes"
	"fmt"
	"math/big"
	"time"

	"github.com/rodaine/table"

	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/costmodel"
	"github.com/zkforge/blobplan/packing"
	"github.com/zkforge/blobplan/pkg/unit"
)

// EthDisplayDecimals is how many decimal places cost figures carry in output.
// Rounding happens here and nowhere earlier.
const EthDisplayDecimals = 8

// BinAssignment is one packed blob in the report.
type BinAssignment struct {
	BlobIndex      int   `json:"blobIndex"`
	PayloadIndices []int `json:"payloadIndices"`
	PayloadBytes   int   `json:"payloadBytes"`
	FreeBytes      int   `json:"freeBytes"`
}

// Report is the full plan: chain identification, fee inputs, the bin
// assignment and the cost comparison. String fields hold already-formatted
// decimal amounts so JSON consumers never see floats for money.
type Report struct {
	Network         string `json:"network"`
	ChainID         uint64 `json:"chainId"`
	BlockNumber     uint64 `json:"blockNumber,omitempty"`
	TimestampUTC    string `json:"timestampUtc,omitempty"`
	BaseFeeGwei     string `json:"baseFeeGwei"`
	TipGwei         string `json:"tipGwei"`
	BlobBaseFeeGwei string `json:"blobBaseFeeGwei,omitempty"`
	GasUsed         int64  `json:"gasUsed"`

	Bins               []*BinAssignment `json:"bins"`
	TotalPayloadBytes  int              `json:"totalPayloadBytes"`
	BlobCount          int              `json:"blobCount"`
	TotalFreeBytes     int              `json:"totalFreeBytes"`
	AvgBlobUtilization *float64         `json:"avgBlobUtilization,omitempty"`

	ExecutionCostEth    string   `json:"executionCostEth"`
	BlobCostEth         string   `json:"blobCostEth,omitempty"`
	CalldataCostEth     string   `json:"calldataCostEth"`
	BlobToCalldataRatio *float64 `json:"blobToCalldataRatio,omitempty"`

	ExecutionCostUSD string `json:"executionCostUsd,omitempty"`
	BlobCostUSD      string `json:"blobCostUsd,omitempty"`
	CalldataCostUSD  string `json:"calldataCostUsd,omitempty"`

	Notes []string `json:"notes,omitempty"`
}

// Assemble builds a report from the snapshot, packing and breakdown. gasUsed
// is echoed as supplied. ethPriceUSD, when positive, adds linear USD
// conversions of the three cost figures.
func Assemble(snap *chainfee.Snapshot, bins []*packing.Bin, breakdown *costmodel.Breakdown, gasUsed int64, ethPriceUSD float64) *Report {
	rep := &Report{
		Network:     snap.Network,
		ChainID:     snap.ChainID,
		BlockNumber: snap.BlockNumber,
		BaseFeeGwei: unit.WeiToString(snap.BaseFeeWei, unit.GweiDecimalNum),
		TipGwei:     unit.WeiToString(snap.TipWei, unit.GweiDecimalNum),
		GasUsed:     gasUsed,

		Bins:               make([]*BinAssignment, 0, len(bins)),
		TotalPayloadBytes:  breakdown.TotalPayloadBytes,
		BlobCount:          breakdown.BlobCount,
		TotalFreeBytes:     breakdown.TotalFreeBytes,
		AvgBlobUtilization: breakdown.AvgBlobUtilization,

		ExecutionCostEth:    unit.FormatEth(breakdown.ExecutionCostWei, EthDisplayDecimals),
		CalldataCostEth:     unit.FormatEth(breakdown.CalldataCostWei, EthDisplayDecimals),
		BlobToCalldataRatio: breakdown.BlobToCalldataRatio,

		Notes: breakdown.Notes,
	}
	if !snap.Timestamp.IsZero() {
		rep.TimestampUTC = snap.Timestamp.UTC().Format(time.RFC3339)
	}
	if snap.BlobBaseFeeWei != nil {
		rep.BlobBaseFeeGwei = unit.WeiToString(snap.BlobBaseFeeWei, unit.GweiDecimalNum)
	}
	if breakdown.BlobCostWei != nil {
		rep.BlobCostEth = unit.FormatEth(breakdown.BlobCostWei, EthDisplayDecimals)
	}
	for _, bin := range bins {
		rep.Bins = append(rep.Bins, &BinAssignment{
			BlobIndex:      bin.BlobIndex,
			PayloadIndices: bin.Members,
			PayloadBytes:   bin.UsedBytes,
			FreeBytes:      bin.FreeBytes,
		})
	}
	if ethPriceUSD > 0 {
		rep.ExecutionCostUSD = usd(breakdown.ExecutionCostWei, ethPriceUSD)
		rep.CalldataCostUSD = usd(breakdown.CalldataCostWei, ethPriceUSD)
		if breakdown.BlobCostWei != nil {
			rep.BlobCostUSD = usd(breakdown.BlobCostWei, ethPriceUSD)
		}
	}
	return rep
}

// usd converts a wei amount to a dollar string at the given ETH price,
// rounded to cents at the very end.
func usd(wei *big.Int, price float64) string {
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	dollars, _ := new(big.Float).Mul(eth, big.NewFloat(price)).Float64()
	return fmt.Sprintf("%.2f", dollars)
}

// Text renders the report as terminal tables.
func (r *Report) Text() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Network:       %s (chain ID %d)\n", r.Network, r.ChainID)
	if r.BlockNumber > 0 {
		fmt.Fprintf(&buf, "Block:         %d", r.BlockNumber)
		if r.TimestampUTC != "" {
			fmt.Fprintf(&buf, "  (%s)", r.TimestampUTC)
		}
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "Base fee:      %s gwei\n", r.BaseFeeGwei)
	fmt.Fprintf(&buf, "Priority tip:  %s gwei\n", r.TipGwei)
	if r.BlobBaseFeeGwei != "" {
		fmt.Fprintf(&buf, "Blob base fee: %s gwei\n", r.BlobBaseFeeGwei)
	}
	buf.WriteString("\n")

	if len(r.Bins) > 0 {
		tb := table.New("Blob", "Payloads", "Used Bytes", "Free Bytes")
		tb.WithWriter(&buf)
		for _, bin := range r.Bins {
			tb.AddRow(bin.BlobIndex, fmt.Sprint(bin.PayloadIndices), bin.PayloadBytes, bin.FreeBytes)
		}
		tb.Print()
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "Total payload: %d bytes in %d blob(s), %d bytes free\n",
		r.TotalPayloadBytes, r.BlobCount, r.TotalFreeBytes)
	if r.AvgBlobUtilization != nil {
		fmt.Fprintf(&buf, "Utilization:   %.2f%%\n", *r.AvgBlobUtilization*100)
	}
	buf.WriteString("\n")

	tb := table.New("Channel", "Cost (ETH)", "Cost (USD)")
	tb.WithWriter(&buf)
	tb.AddRow("execution", r.ExecutionCostEth, orDash(r.ExecutionCostUSD))
	tb.AddRow("blob", orDash(r.BlobCostEth), orDash(r.BlobCostUSD))
	tb.AddRow("calldata", r.CalldataCostEth, orDash(r.CalldataCostUSD))
	tb.Print()

	if r.BlobToCalldataRatio != nil {
		fmt.Fprintf(&buf, "\nBlob vs calldata: %.4fx\n", *r.BlobToCalldataRatio)
	}
	for _, note := range r.Notes {
		fmt.Fprintf(&buf, "\nNote: %s\n", note)
	}
	return buf.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
