// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"fmt"
	"sync"
)

var (
	_networkMu sync.RWMutex
	_networks  = map[uint64]string{
		1:        "Ethereum Mainnet",
		5:        "Goerli Testnet",
		10:       "Optimism",
		137:      "Polygon",
		324:      "zkSync Era",
		8453:     "Base",
		42161:    "Arbitrum One",
		59144:    "Linea",
		11155111: "Sepolia Testnet",
	}
)

// NetworkName maps a chain ID to a human-readable network name.
func NetworkName(chainID uint64) string {
	_networkMu.RLock()
	name, ok := _networks[chainID]
	_networkMu.RUnlock()
	if !ok {
		return fmt.Sprintf("Unknown (chain ID %d)", chainID)
	}
	return name
}

// RegisterNetwork adds or overrides a chain ID to name mapping, used by the
// config layer to teach the tool about private chains.
func RegisterNetwork(chainID uint64, name string) {
	_networkMu.Lock()
	_networks[chainID] = name
	_networkMu.Unlock()
}
