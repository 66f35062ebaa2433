// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package unit

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

const (
	// GweiDecimalNum defines the number of decimal digits between wei and Gwei
	GweiDecimalNum = 9
	// EthDecimalNum defines the number of decimal digits between wei and ETH
	EthDecimalNum = 18
)

var (
	// ErrInvalidAmount indicates error for an amount string that cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount string")
	// ErrMinusAmount indicates error for an amount that is minus
	ErrMinusAmount = errors.New("invalid amount that is minus")
)

// StringToWei converts a decimal amount string in the unit defined by
// numDecimals (9 for Gwei, 18 for ETH) into wei. The conversion is a pure
// digit shift on big.Int, no floating point is involved.
func StringToWei(amount string, numDecimals int) (*big.Int, error) {
	parts := strings.Split(amount, ".")
	if len(parts) != 1 {
		if len(parts) > 2 || len(parts[1]) > numDecimals {
			return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
		}
		parts[0] += parts[1]
		numDecimals -= len(parts[1])
	}
	if len(parts[0]) == 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	parts[0] += strings.Repeat("0", numDecimals)
	wei, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q", amount)
	}
	if wei.Sign() < 0 {
		return nil, errors.Wrapf(ErrMinusAmount, "%q", amount)
	}
	return wei, nil
}

// WeiToString converts wei into a decimal string in the unit defined by
// numDecimals, with trailing fractional zeros trimmed.
func WeiToString(wei *big.Int, numDecimals int) string {
	if numDecimals == 0 {
		return wei.String()
	}
	targetUnit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(numDecimals)), nil)
	whole, frac := big.NewInt(0), big.NewInt(0)
	whole.DivMod(wei, targetUnit, frac)
	if frac.Sign() == 0 {
		return whole.String()
	}
	decString := strings.TrimRight(frac.String(), "0")
	zeroString := strings.Repeat("0", numDecimals-len(frac.String()))
	return whole.String() + "." + zeroString + decString
}

// FormatEth renders a non-negative wei amount as an ETH string rounded
// half-up to prec decimal places. This is the only place amounts are
// rounded; all upstream arithmetic stays in exact wei.
func FormatEth(wei *big.Int, prec int) string {
	if prec >= EthDecimalNum {
		return WeiToString(wei, EthDecimalNum)
	}
	shift := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(EthDecimalNum-prec)), nil)
	q, r := big.NewInt(0), big.NewInt(0)
	q.DivMod(wei, shift, r)
	if r.Lsh(r, 1).Cmp(shift) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return WeiToString(q, prec)
}

// GweiToString converts wei into a Gwei decimal string.
func GweiToString(wei *big.Int) string {
	return WeiToString(wei, GweiDecimalNum)
}
