// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package chainfee observes the fee market of EVM chains: it takes one-shot
// fee snapshots, profiles recent blocks, audits proof transactions and
// monitors multiple endpoints. The rest of the system only ever sees the
// immutable Snapshot value; nothing in here caches fee state across runs.
package chainfee

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNegativeTip indicates a priority tip below zero, which is an invalid
	// economic instruction rather than a numeric input to clamp
	ErrNegativeTip = errors.New("priority tip is minus")
	// ErrNegativeBaseFee indicates a base fee below zero
	ErrNegativeBaseFee = errors.New("base fee is minus")
	// ErrNegativeBlobBaseFee indicates a blob base fee below zero
	ErrNegativeBlobBaseFee = errors.New("blob base fee is minus")
	// ErrIncompleteSnapshot indicates a snapshot missing a mandatory field
	ErrIncompleteSnapshot = errors.New("snapshot is missing base fee or tip")
)

// Snapshot is the fee-market state at one block, constructed once per run and
// immutable afterwards. BlobBaseFeeWei is nil when the chain does not expose
// a blob base fee and no override was supplied.
type Snapshot struct {
	ChainID        uint64
	Network        string
	BlockNumber    uint64
	Timestamp      time.Time
	BaseFeeWei     *big.Int
	TipWei         *big.Int
	BlobBaseFeeWei *big.Int
}

// Validate checks the snapshot's field-level invariants.
func (s *Snapshot) Validate() error {
	if s.BaseFeeWei == nil || s.TipWei == nil {
		return ErrIncompleteSnapshot
	}
	if s.BaseFeeWei.Sign() < 0 {
		return errors.Wrapf(ErrNegativeBaseFee, "%s wei", s.BaseFeeWei)
	}
	if s.TipWei.Sign() < 0 {
		return errors.Wrapf(ErrNegativeTip, "%s wei", s.TipWei)
	}
	if s.BlobBaseFeeWei != nil && s.BlobBaseFeeWei.Sign() < 0 {
		return errors.Wrapf(ErrNegativeBlobBaseFee, "%s wei", s.BlobBaseFeeWei)
	}
	return nil
}

// EffectiveWei returns baseFee + tip as a fresh big.Int.
func (s *Snapshot) EffectiveWei() *big.Int {
	return new(big.Int).Add(s.BaseFeeWei, s.TipWei)
}
