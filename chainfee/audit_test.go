// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagOutliers(t *testing.T) {
	require := require.New(t)
	gwei := func(n int64) *big.Int {
		return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
	}
	audit := func(tip *big.Int) *TxAudit {
		return &TxAudit{TipWei: tip}
	}

	t.Run("flags tips far above the median", func(t *testing.T) {
		audits := []*TxAudit{
			audit(gwei(1)),
			audit(gwei(2)),
			audit(gwei(1)),
			audit(gwei(10)),
			audit(gwei(1)),
		}
		flagged := FlagOutliers(audits, 3.0)
		require.Equal([]int{3}, flagged)
		require.True(audits[3].Overpaid)
		require.False(audits[0].Overpaid)
	})

	t.Run("audits without a tip are ignored", func(t *testing.T) {
		audits := []*TxAudit{
			audit(gwei(1)),
			audit(nil),
			audit(gwei(1)),
			audit(gwei(1)),
			audit(gwei(50)),
		}
		flagged := FlagOutliers(audits, 3.0)
		require.Equal([]int{4}, flagged)
	})

	t.Run("small batches are never flagged", func(t *testing.T) {
		audits := []*TxAudit{audit(gwei(1)), audit(gwei(100))}
		require.Nil(FlagOutliers(audits, 3.0))
	})

	t.Run("zero median short-circuits", func(t *testing.T) {
		audits := []*TxAudit{audit(gwei(0)), audit(gwei(0)), audit(gwei(0)), audit(gwei(5))}
		require.Nil(FlagOutliers(audits, 3.0))
	})

	t.Run("non-positive factor disables flagging", func(t *testing.T) {
		audits := []*TxAudit{audit(gwei(1)), audit(gwei(1)), audit(gwei(1)), audit(gwei(100))}
		require.Nil(FlagOutliers(audits, 0))
	})
}
