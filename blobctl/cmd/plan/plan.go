// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package plan implements the packing-and-pricing command, the reason this
// tool exists. It runs fully offline when --base-fee-gwei is supplied and
// only dials the chain otherwise.
package plan

import (
	"context"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/blobctl/util"
	"github.com/zkforge/blobplan/blobctl/validator"
	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/costmodel"
	"github.com/zkforge/blobplan/packing"
	"github.com/zkforge/blobplan/report"
	"github.com/zkforge/blobplan/pkg/unit"
)

// Multi-language support
var (
	_planCmdShorts = map[config.Language]string{
		config.English: "Pack payloads into blobs and estimate publication cost",
		config.Chinese: "将负载打包进blob并估算发布成本",
	}
	_planCmdUses = map[config.Language]string{
		config.English: "plan [--sizes LIST | --sizes-file FILE] [-e ENDPOINT]",
		config.Chinese: "plan [--sizes 列表 | --sizes-file 文件] [-e 端点]",
	}
)

var (
	_sizesList       string
	_sizesFile       string
	_gasUsed         int64
	_tipGwei         string
	_baseFeeGwei     string
	_blobBaseFeeGwei string
	_ethPriceUSD     float64
	_endpoint        string
	_timeout         time.Duration
)

// PlanCmd represents the plan command
var PlanCmd = &cobra.Command{
	Use:   config.TranslateInLang(_planCmdUses),
	Short: config.TranslateInLang(_planCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := plan()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	PlanCmd.Flags().StringVar(&_sizesList, "sizes", "", "comma-separated payload sizes in bytes")
	PlanCmd.Flags().StringVar(&_sizesFile, "sizes-file", "", "file with one payload size per line")
	PlanCmd.Flags().Int64Var(&_gasUsed, "gas-used", 0, "execution gas unrelated to data publication")
	PlanCmd.Flags().StringVar(&_tipGwei, "tip-gwei", config.ReadConfig.TipGwei, "priority tip in gwei")
	PlanCmd.Flags().StringVar(&_baseFeeGwei, "base-fee-gwei", "", "base fee override in gwei, skips the RPC fetch")
	PlanCmd.Flags().StringVar(&_blobBaseFeeGwei, "blob-base-fee-gwei", "", "blob base fee override in gwei")
	PlanCmd.Flags().Float64Var(&_ethPriceUSD, "eth-price", config.ReadConfig.EthPriceUSD, "ETH price in USD for linear conversion")
	PlanCmd.Flags().StringVarP(&_endpoint, "endpoint", "e", "", "RPC endpoint to fetch fees from")
	PlanCmd.Flags().DurationVar(&_timeout, "timeout", 20*time.Second, "RPC timeout")
}

type planMessage struct {
	*report.Report
}

func (m *planMessage) String() string {
	if output.Format == "" {
		return m.Text()
	}
	return output.FormatString(output.Result, m)
}

func plan() (string, error) {
	sizes, err := readSizes()
	if err != nil {
		return "", err
	}
	tipWei, err := unit.StringToWei(_tipGwei, unit.GweiDecimalNum)
	if err != nil {
		return "", output.NewError(output.ValidationError, "invalid tip "+_tipGwei, err)
	}
	var blobOverrideWei *big.Int
	if _blobBaseFeeGwei != "" {
		if blobOverrideWei, err = unit.StringToWei(_blobBaseFeeGwei, unit.GweiDecimalNum); err != nil {
			return "", output.NewError(output.ValidationError, "invalid blob base fee "+_blobBaseFeeGwei, err)
		}
	}

	snap, err := snapshot(tipWei, blobOverrideWei)
	if err != nil {
		return "", err
	}
	bins, err := packing.Pack(sizes, packing.BlobCapacityBytes)
	if err != nil {
		return "", output.NewError(output.ValidationError, "failed to pack payloads", err)
	}
	breakdown, err := costmodel.Estimate(bins, sizes, snap, _gasUsed)
	if err != nil {
		return "", output.NewError(output.ValidationError, "failed to estimate costs", err)
	}
	rep := report.Assemble(snap, bins, breakdown, _gasUsed, _ethPriceUSD)
	return (&planMessage{rep}).String(), nil
}

func readSizes() ([]int, error) {
	switch {
	case _sizesList != "" && _sizesFile != "":
		return nil, output.NewError(output.FlagError, "--sizes and --sizes-file are mutually exclusive", nil)
	case _sizesList != "":
		sizes, err := validator.ParseSizes(_sizesList)
		if err != nil {
			return nil, output.NewError(output.InputError, "failed to parse --sizes", err)
		}
		return sizes, nil
	case _sizesFile != "":
		sizes, err := validator.ReadSizesFile(_sizesFile)
		if err != nil {
			return nil, output.NewError(output.ReadFileError, "failed to read --sizes-file", err)
		}
		return sizes, nil
	default:
		return nil, output.NewError(output.FlagError, "one of --sizes or --sizes-file is required", nil)
	}
}

// snapshot builds the fee snapshot, offline from the override flags when
// --base-fee-gwei is set, otherwise from the chain head.
func snapshot(tipWei, blobOverrideWei *big.Int) (*chainfee.Snapshot, error) {
	if _baseFeeGwei != "" {
		baseWei, err := unit.StringToWei(_baseFeeGwei, unit.GweiDecimalNum)
		if err != nil {
			return nil, output.NewError(output.ValidationError, "invalid base fee "+_baseFeeGwei, err)
		}
		snap := &chainfee.Snapshot{
			Network:        "manual input",
			Timestamp:      time.Now().UTC(),
			BaseFeeWei:     baseWei,
			TipWei:         tipWei,
			BlobBaseFeeWei: blobOverrideWei,
		}
		if err := snap.Validate(); err != nil {
			return nil, output.NewError(output.ValidationError, "invalid fee inputs", err)
		}
		return snap, nil
	}

	endpoint := util.Endpoint(_endpoint)
	if err := validator.ValidateEndpoint(endpoint); err != nil {
		return nil, output.NewError(output.ConfigError, "", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), _timeout)
	defer cancel()
	client, err := chainfee.Dial(ctx, endpoint)
	if err != nil {
		return nil, output.NewError(output.NetworkError, "failed to connect to endpoint", err)
	}
	defer client.Close()
	snap, err := client.SnapshotLatest(ctx, tipWei, blobOverrideWei)
	if err != nil {
		return nil, output.NewError(output.NetworkError, "failed to fetch fee snapshot", err)
	}
	return snap, nil
}
