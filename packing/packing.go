// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package packing assigns variable-size proof payloads to fixed-capacity
// EIP-4844 blobs with a First-Fit-Decreasing heuristic. The assignment is
// deterministic: equal sizes are placed in original input order, bins are
// returned in creation order and members in placement order.
package packing

import (
	"sort"

	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
)

// BlobCapacityBytes is the usable byte capacity of a single blob.
const BlobCapacityBytes = params.BlobTxFieldElementsPerBlob * params.BlobTxBytesPerFieldElement

var (
	// ErrNegativeSize indicates a payload size below zero
	ErrNegativeSize = errors.New("payload size is minus")
	// ErrPayloadTooLarge indicates a payload that cannot fit into a single blob
	ErrPayloadTooLarge = errors.New("payload size exceeds blob capacity")
	// ErrInvalidCapacity indicates a non-positive bin capacity
	ErrInvalidCapacity = errors.New("bin capacity must be positive")
)

// Bin is one packed blob. Members holds the original payload indices in the
// order they were placed; UsedBytes + FreeBytes always equals the capacity
// the bin was opened with.
type Bin struct {
	BlobIndex int
	Members   []int
	UsedBytes int
	FreeBytes int
}

// Validate checks every size against the capacity before any packing takes
// place, so an invalid input never produces a partial bin set. The returned
// error names the offending payload index.
func Validate(sizes []int, capacity int) error {
	if capacity <= 0 {
		return errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	for i, size := range sizes {
		if size < 0 {
			return errors.Wrapf(ErrNegativeSize, "payload %d: %d bytes", i, size)
		}
		if size > capacity {
			return errors.Wrapf(ErrPayloadTooLarge, "payload %d: %d bytes > capacity %d; split payloads before packing", i, size, capacity)
		}
	}
	return nil
}

// Pack packs the payload sizes into bins of the given capacity using
// First-Fit-Decreasing: payloads are visited largest first (ties by input
// order) and each goes into the first open bin with enough remaining space,
// opening a new bin when none fits. An empty input yields zero bins.
func Pack(sizes []int, capacity int) ([]*Bin, error) {
	if err := Validate(sizes, capacity); err != nil {
		return nil, err
	}
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]] > sizes[order[b]]
	})

	bins := make([]*Bin, 0, len(sizes))
	for _, idx := range order {
		size := sizes[idx]
		placed := false
		for _, bin := range bins {
			if size <= bin.FreeBytes {
				bin.Members = append(bin.Members, idx)
				bin.UsedBytes += size
				bin.FreeBytes -= size
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, &Bin{
				BlobIndex: len(bins),
				Members:   []int{idx},
				UsedBytes: size,
				FreeBytes: capacity - size,
			})
		}
	}
	return bins, nil
}

// TotalBytes sums the payload sizes.
func TotalBytes(sizes []int) int {
	total := 0
	for _, s := range sizes {
		total += s
	}
	return total
}

// TotalFreeBytes sums the unused capacity across bins.
func TotalFreeBytes(bins []*Bin) int {
	total := 0
	for _, b := range bins {
		total += b.FreeBytes
	}
	return total
}
