// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"context"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zkforge/blobplan/pkg/log"
)

// ErrTxPending indicates a transaction that has not been mined yet.
var ErrTxPending = errors.New("transaction is still pending")

// TxAudit is the fee post-mortem of one mined proof transaction.
type TxAudit struct {
	Hash                 common.Hash `json:"hash"`
	BlockNumber          uint64      `json:"blockNumber"`
	Success              bool        `json:"success"`
	GasUsed              uint64      `json:"gasUsed"`
	EffectiveGasPriceWei *big.Int    `json:"effectiveGasPriceWei"`
	BaseFeeWei           *big.Int    `json:"baseFeeWei,omitempty"`
	TipWei               *big.Int    `json:"tipWei,omitempty"`
	BlobGasUsed          uint64      `json:"blobGasUsed,omitempty"`
	BlobGasPriceWei      *big.Int    `json:"blobGasPriceWei,omitempty"`
	ExecutionCostWei     *big.Int    `json:"executionCostWei"`
	BlobCostWei          *big.Int    `json:"blobCostWei,omitempty"`
	Overpaid             bool        `json:"overpaid"`
}

// Auditor reconstructs what mined transactions actually paid.
type Auditor struct {
	client *Client
}

// NewAuditor creates an auditor backed by the given client.
func NewAuditor(client *Client) *Auditor {
	return &Auditor{client: client}
}

// Audit fetches the receipt of each transaction and reconstructs its fee
// breakdown. The tip is recovered as effectiveGasPrice minus the base fee of
// the containing block. Outlier flags are left unset; run FlagOutliers on the
// full batch afterwards.
func (a *Auditor) Audit(ctx context.Context, hashes []common.Hash) ([]*TxAudit, error) {
	audits := make([]*TxAudit, 0, len(hashes))
	for _, hash := range hashes {
		audit, err := a.auditOne(ctx, hash)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}
	return audits, nil
}

func (a *Auditor) auditOne(ctx context.Context, hash common.Hash) (*TxAudit, error) {
	receipt, err := a.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.BlockNumber == nil {
		return nil, errors.Wrapf(ErrTxPending, "%s", hash)
	}
	header, err := a.client.HeaderByNumber(ctx, receipt.BlockNumber)
	if err != nil {
		return nil, err
	}

	audit := &TxAudit{
		Hash:                 hash,
		BlockNumber:          receipt.BlockNumber.Uint64(),
		Success:              receipt.Status == types.ReceiptStatusSuccessful,
		GasUsed:              receipt.GasUsed,
		EffectiveGasPriceWei: receipt.EffectiveGasPrice,
		BaseFeeWei:           header.BaseFee,
		BlobGasUsed:          receipt.BlobGasUsed,
		BlobGasPriceWei:      receipt.BlobGasPrice,
	}
	if header.BaseFee != nil && receipt.EffectiveGasPrice != nil {
		audit.TipWei = new(big.Int).Sub(receipt.EffectiveGasPrice, header.BaseFee)
	}
	if receipt.EffectiveGasPrice != nil {
		audit.ExecutionCostWei = new(big.Int).Mul(
			receipt.EffectiveGasPrice, new(big.Int).SetUint64(receipt.GasUsed))
	}
	if receipt.BlobGasUsed > 0 && receipt.BlobGasPrice != nil {
		audit.BlobCostWei = new(big.Int).Mul(
			receipt.BlobGasPrice, new(big.Int).SetUint64(receipt.BlobGasUsed))
	}
	log.L().Debug("audited transaction",
		zap.String("hash", hash.Hex()),
		zap.Uint64("block", audit.BlockNumber),
		zap.Bool("success", audit.Success))
	return audit, nil
}

// FlagOutliers marks the audits whose recovered tip exceeds factor times the
// batch median tip and returns their indices. Audits without a tip are
// skipped. A batch needs at least three tips before anything is flagged.
func FlagOutliers(audits []*TxAudit, factor float64) []int {
	var tips []*big.Int
	for _, audit := range audits {
		if audit.TipWei != nil && audit.TipWei.Sign() >= 0 {
			tips = append(tips, audit.TipWei)
		}
	}
	if len(tips) < 3 || factor <= 0 {
		return nil
	}
	sorted := make([]*big.Int, len(tips))
	copy(sorted, tips)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })
	median := sorted[len(sorted)/2]
	if median.Sign() == 0 {
		return nil
	}
	threshold := new(big.Float).Mul(new(big.Float).SetInt(median), big.NewFloat(factor))

	var flagged []int
	for i, audit := range audits {
		if audit.TipWei == nil {
			continue
		}
		if new(big.Float).SetInt(audit.TipWei).Cmp(threshold) > 0 {
			audit.Overpaid = true
			flagged = append(flagged, i)
		}
	}
	return flagged
}
