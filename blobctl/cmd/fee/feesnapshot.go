// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package fee

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/pkg/unit"
)

var _feeSnapshotCmdShorts = map[config.Language]string{
	config.English: "Fetch the current fee snapshot from the chain head",
	config.Chinese: "从链头获取当前费用快照",
}

var _snapshotTipGwei string

// _feeSnapshotCmd represents the fee snapshot command
var _feeSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: config.TranslateInLang(_feeSnapshotCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := feeSnapshot()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	_feeSnapshotCmd.Flags().StringVar(&_snapshotTipGwei, "tip-gwei", config.ReadConfig.TipGwei, "priority tip in gwei")
}

type snapshotMessage struct {
	Network         string `json:"network"`
	ChainID         uint64 `json:"chainId"`
	BlockNumber     uint64 `json:"blockNumber"`
	TimestampUTC    string `json:"timestampUtc"`
	BaseFeeGwei     string `json:"baseFeeGwei"`
	TipGwei         string `json:"tipGwei"`
	BlobBaseFeeGwei string `json:"blobBaseFeeGwei,omitempty"`
}

func (m *snapshotMessage) String() string {
	if output.Format == "" {
		blob := "unavailable"
		if m.BlobBaseFeeGwei != "" {
			blob = m.BlobBaseFeeGwei + " gwei"
		}
		return fmt.Sprintf("%s (chain ID %d), block %d at %s\nbase fee: %s gwei\ntip: %s gwei\nblob base fee: %s",
			m.Network, m.ChainID, m.BlockNumber, m.TimestampUTC, m.BaseFeeGwei, m.TipGwei, blob)
	}
	return output.FormatString(output.Result, m)
}

func feeSnapshot() (string, error) {
	tipWei, err := unit.StringToWei(_snapshotTipGwei, unit.GweiDecimalNum)
	if err != nil {
		return "", output.NewError(output.ValidationError, "invalid tip "+_snapshotTipGwei, err)
	}
	var message *snapshotMessage
	err = dial(func(ctx context.Context, client *chainfee.Client) error {
		snap, err := client.SnapshotLatest(ctx, tipWei, nil)
		if err != nil {
			return output.NewError(output.NetworkError, "failed to fetch fee snapshot", err)
		}
		message = &snapshotMessage{
			Network:      snap.Network,
			ChainID:      snap.ChainID,
			BlockNumber:  snap.BlockNumber,
			TimestampUTC: snap.Timestamp.Format(time.RFC3339),
			BaseFeeGwei:  unit.GweiToString(snap.BaseFeeWei),
			TipGwei:      unit.GweiToString(snap.TipWei),
		}
		if snap.BlobBaseFeeWei != nil {
			message.BlobBaseFeeGwei = unit.GweiToString(snap.BlobBaseFeeWei)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message.String(), nil
}
