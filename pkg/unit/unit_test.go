// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package unit

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStringToWei(t *testing.T) {
	require := require.New(t)
	t.Run("whole gwei", func(t *testing.T) {
		wei, err := StringToWei("30", GweiDecimalNum)
		require.NoError(err)
		require.Equal("30000000000", wei.String())
	})
	t.Run("fractional gwei", func(t *testing.T) {
		wei, err := StringToWei("1.5", GweiDecimalNum)
		require.NoError(err)
		require.Equal("1500000000", wei.String())
	})
	t.Run("sub-gwei blob fee", func(t *testing.T) {
		wei, err := StringToWei("0.8", GweiDecimalNum)
		require.NoError(err)
		require.Equal("800000000", wei.String())
	})
	t.Run("zero", func(t *testing.T) {
		wei, err := StringToWei("0", GweiDecimalNum)
		require.NoError(err)
		require.Zero(wei.Sign())
	})
	t.Run("minus is rejected", func(t *testing.T) {
		_, err := StringToWei("-1.5", GweiDecimalNum)
		require.Equal(ErrMinusAmount, errors.Cause(err))
	})
	t.Run("too many decimals", func(t *testing.T) {
		_, err := StringToWei("1.0000000001", GweiDecimalNum)
		require.Equal(ErrInvalidAmount, errors.Cause(err))
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := StringToWei("1.2.3", GweiDecimalNum)
		require.Error(err)
		_, err = StringToWei("abc", GweiDecimalNum)
		require.Error(err)
	})
}

func TestWeiToString(t *testing.T) {
	require := require.New(t)
	require.Equal("31.5", WeiToString(big.NewInt(31500000000), GweiDecimalNum))
	require.Equal("0.8", WeiToString(big.NewInt(800000000), GweiDecimalNum))
	require.Equal("0", WeiToString(big.NewInt(0), GweiDecimalNum))
	require.Equal("0.000000001", WeiToString(big.NewInt(1), GweiDecimalNum))
	wei, _ := new(big.Int).SetString("37800000000000000", 10)
	require.Equal("0.0378", WeiToString(wei, EthDecimalNum))
}

func TestFormatEth(t *testing.T) {
	require := require.New(t)
	t.Run("rounds half-up at prec", func(t *testing.T) {
		// 0.0002097152 ETH rounded to 8 decimals
		wei, _ := new(big.Int).SetString("209715200000000", 10)
		require.Equal("0.00020972", FormatEth(wei, 8))
	})
	t.Run("exact values untouched", func(t *testing.T) {
		wei, _ := new(big.Int).SetString("77616000000000000", 10)
		require.Equal("0.077616", FormatEth(wei, 8))
	})
	t.Run("round once at the end", func(t *testing.T) {
		// Two components of 0.00005 ETH each. Rounding each part to 4
		// decimals before combining yields 0.0001 + 0.0001 = 0.0002; the
		// contract is to combine in wei first and round once: 0.0001.
		part := big.NewInt(50000000000000)
		perStep := FormatEth(part, 4)
		require.Equal("0.0001", perStep)
		sum := new(big.Int).Add(part, part)
		require.Equal("0.0001", FormatEth(sum, 4))
		require.NotEqual(FormatEth(sum, 4), "0.0002")
	})
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	for _, s := range []string{"31.5", "0.8", "1234", "0.000000001"} {
		wei, err := StringToWei(s, GweiDecimalNum)
		require.NoError(err)
		require.Equal(s, WeiToString(wei, GweiDecimalNum))
	}
}
