// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package fee

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/costmodel"
	"github.com/zkforge/blobplan/pkg/unit"
)

var _feeGasCmdShorts = map[config.Language]string{
	config.English: "Fetch the node's suggested gas price",
	config.Chinese: "获取节点建议的gas价格",
}

var (
	_tipPercent  int64
	_gasGasUsed  int64
	_gasEthPrice float64
)

// _feeGasCmd represents the fee gas command
var _feeGasCmd = &cobra.Command{
	Use:   "gas",
	Short: config.TranslateInLang(_feeGasCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := feeGas()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	_feeGasCmd.Flags().Int64Var(&_tipPercent, "tip-percent", 0, "markup in percent applied to the suggested price")
	_feeGasCmd.Flags().Int64Var(&_gasGasUsed, "gas-used", 0, "estimate the cost of this much gas at the adjusted price")
	_feeGasCmd.Flags().Float64Var(&_gasEthPrice, "eth-price", config.ReadConfig.EthPriceUSD, "ETH price in USD for linear conversion")
}

type gasMessage struct {
	SuggestedGwei string `json:"suggestedGwei"`
	AdjustedGwei  string `json:"adjustedGwei,omitempty"`
	TipPercent    int64  `json:"tipPercent,omitempty"`
	GasUsed       int64  `json:"gasUsed,omitempty"`
	CostEth       string `json:"costEth,omitempty"`
	CostUSD       string `json:"costUsd,omitempty"`
}

func (m *gasMessage) String() string {
	if output.Format == "" {
		line := fmt.Sprintf("suggested gas price: %s gwei", m.SuggestedGwei)
		if m.AdjustedGwei != "" {
			line = fmt.Sprintf("suggested gas price: %s gwei (+%d%% = %s gwei)",
				m.SuggestedGwei, m.TipPercent, m.AdjustedGwei)
		}
		if m.CostEth != "" {
			line += fmt.Sprintf("\ncost of %d gas: %s ETH", m.GasUsed, m.CostEth)
			if m.CostUSD != "" {
				line += fmt.Sprintf(" (%s USD)", m.CostUSD)
			}
		}
		return line
	}
	return output.FormatString(output.Result, m)
}

func feeGas() (string, error) {
	if _tipPercent < 0 {
		return "", output.NewError(output.ValidationError, "tip percent is minus", nil)
	}
	var message *gasMessage
	err := dial(func(ctx context.Context, client *chainfee.Client) error {
		price, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return output.NewError(output.NetworkError, "failed to fetch gas price", err)
		}
		message = &gasMessage{SuggestedGwei: unit.GweiToString(price)}
		adjusted := price
		if _tipPercent > 0 {
			adjusted = AdjustByPercent(price, _tipPercent)
			message.AdjustedGwei = unit.GweiToString(adjusted)
			message.TipPercent = _tipPercent
		}
		if _gasGasUsed > 0 {
			cost := costmodel.ExecutionCost(adjusted, uint64(_gasGasUsed))
			message.GasUsed = _gasGasUsed
			message.CostEth = unit.FormatEth(cost, 8)
			if _gasEthPrice > 0 {
				eth := new(big.Float).Quo(new(big.Float).SetInt(cost), big.NewFloat(1e18))
				dollars, _ := new(big.Float).Mul(eth, big.NewFloat(_gasEthPrice)).Float64()
				message.CostUSD = fmt.Sprintf("%.2f", dollars)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message.String(), nil
}

// AdjustByPercent scales a wei amount by (100+percent)/100 in exact integer
// arithmetic.
func AdjustByPercent(wei *big.Int, percent int64) *big.Int {
	scaled := new(big.Int).Mul(wei, big.NewInt(100+percent))
	return scaled.Div(scaled, big.NewInt(100))
}
