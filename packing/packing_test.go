// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package packing

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBlobCapacity(t *testing.T) {
	require.Equal(t, 131072, BlobCapacityBytes)
}

func TestPack(t *testing.T) {
	require := require.New(t)

	t.Run("empty input yields zero bins", func(t *testing.T) {
		bins, err := Pack(nil, BlobCapacityBytes)
		require.NoError(err)
		require.Empty(bins)
		bins, err = Pack([]int{}, BlobCapacityBytes)
		require.NoError(err)
		require.Empty(bins)
	})

	t.Run("two payloads that do not share a bin", func(t *testing.T) {
		bins, err := Pack([]int{64000, 90000}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 2)
		// FFD visits 90000 first, 64000 does not fit into the 41072 left.
		require.Equal([]int{1}, bins[0].Members)
		require.Equal(90000, bins[0].UsedBytes)
		require.Equal(41072, bins[0].FreeBytes)
		require.Equal([]int{0}, bins[1].Members)
		require.Equal(64000, bins[1].UsedBytes)
		require.Equal(67072, bins[1].FreeBytes)
	})

	t.Run("equal sizes keep input order", func(t *testing.T) {
		bins, err := Pack([]int{50000, 50000, 50000}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 2)
		require.Equal([]int{0, 1}, bins[0].Members)
		require.Equal(100000, bins[0].UsedBytes)
		require.Equal([]int{2}, bins[1].Members)
	})

	t.Run("exact capacity payload owns its bin", func(t *testing.T) {
		bins, err := Pack([]int{BlobCapacityBytes, 1}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 2)
		require.Equal([]int{0}, bins[0].Members)
		require.Zero(bins[0].FreeBytes)
		require.Equal([]int{1}, bins[1].Members)
	})

	t.Run("perfect tiling fills one bin", func(t *testing.T) {
		bins, err := Pack([]int{65536, 65536}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 1)
		require.Equal([]int{0, 1}, bins[0].Members)
		require.Zero(bins[0].FreeBytes)
	})

	t.Run("zero size payloads pack without opening extra bins", func(t *testing.T) {
		bins, err := Pack([]int{0, 70000, 0}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 1)
		require.Equal([]int{1, 0, 2}, bins[0].Members)
		require.Equal(70000, bins[0].UsedBytes)
	})

	t.Run("first fit reuses earlier bins", func(t *testing.T) {
		// desc order: 100000, 90000, 30000, 20000
		// 100000 -> bin0 (free 31072), 90000 -> bin1 (free 41072),
		// 30000 fits bin0 (free 1072), 20000 fits bin1 (free 21072).
		bins, err := Pack([]int{30000, 100000, 20000, 90000}, BlobCapacityBytes)
		require.NoError(err)
		require.Len(bins, 2)
		require.Equal([]int{1, 0}, bins[0].Members)
		require.Equal(1072, bins[0].FreeBytes)
		require.Equal([]int{3, 2}, bins[1].Members)
		require.Equal(21072, bins[1].FreeBytes)
	})
}

func TestPackRejectsBadInput(t *testing.T) {
	require := require.New(t)

	t.Run("oversize payload", func(t *testing.T) {
		bins, err := Pack([]int{131073}, BlobCapacityBytes)
		require.Nil(bins)
		require.Equal(ErrPayloadTooLarge, errors.Cause(err))
		require.Contains(err.Error(), "payload 0")
		require.Contains(err.Error(), "131073")
	})

	t.Run("oversize in the middle is reported by index", func(t *testing.T) {
		_, err := Pack([]int{1000, 180000, 2000}, BlobCapacityBytes)
		require.Equal(ErrPayloadTooLarge, errors.Cause(err))
		require.Contains(err.Error(), "payload 1")
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := Pack([]int{1000, -1}, BlobCapacityBytes)
		require.Equal(ErrNegativeSize, errors.Cause(err))
		require.Contains(err.Error(), "payload 1")
	})

	t.Run("bad capacity", func(t *testing.T) {
		_, err := Pack([]int{1}, 0)
		require.Equal(ErrInvalidCapacity, errors.Cause(err))
	})
}

func TestPackInvariants(t *testing.T) {
	require := require.New(t)
	inputs := [][]int{
		{},
		{0},
		{131072},
		{64000, 90000},
		{50000, 50000, 50000},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{120000, 100000, 80000, 60000, 40000, 20000, 10000, 5000},
		{65536, 65536, 65536, 65536},
	}
	for _, sizes := range inputs {
		bins, err := Pack(sizes, BlobCapacityBytes)
		require.NoError(err)

		// capacity invariant and used/free bookkeeping
		for _, bin := range bins {
			sum := 0
			for _, idx := range bin.Members {
				sum += sizes[idx]
			}
			require.Equal(bin.UsedBytes, sum)
			require.LessOrEqual(bin.UsedBytes, BlobCapacityBytes)
			require.Equal(BlobCapacityBytes, bin.UsedBytes+bin.FreeBytes)
		}

		// conservation: every index appears exactly once
		seen := make(map[int]int)
		for _, bin := range bins {
			for _, idx := range bin.Members {
				seen[idx]++
			}
		}
		require.Len(seen, len(sizes))
		for i := range sizes {
			require.Equal(1, seen[i])
		}

		// determinism: a second run is identical
		again, err := Pack(sizes, BlobCapacityBytes)
		require.NoError(err)
		require.Equal(bins, again)
	}
}
