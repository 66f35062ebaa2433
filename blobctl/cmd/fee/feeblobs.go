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

var _feeBlobsCmdShorts = map[config.Language]string{
	config.English: "Fetch the blob base fee and the flat cost of one blob",
	config.Chinese: "获取blob基础费用以及单个blob的固定成本",
}

// _feeBlobsCmd represents the fee blobs command
var _feeBlobsCmd = &cobra.Command{
	Use:   "blobs",
	Short: config.TranslateInLang(_feeBlobsCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := feeBlobs()
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

type blobsMessage struct {
	BlobBaseFeeGwei string `json:"blobBaseFeeGwei"`
	PerBlobEth      string `json:"perBlobEth"`
}

func (m *blobsMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("blob base fee: %s gwei\ncost per blob: %s ETH", m.BlobBaseFeeGwei, m.PerBlobEth)
	}
	return output.FormatString(output.Result, m)
}

func feeBlobs() (string, error) {
	var message *blobsMessage
	err := dial(func(ctx context.Context, client *chainfee.Client) error {
		snap, err := client.SnapshotLatest(ctx, big.NewInt(0), nil)
		if err != nil {
			return output.NewError(output.NetworkError, "failed to fetch fee snapshot", err)
		}
		if snap.BlobBaseFeeWei == nil {
			return output.NewError(output.NetworkError,
				"blob base fee unavailable on "+snap.Network+"; the endpoint does not expose eth_blobBaseFee", nil)
		}
		message = &blobsMessage{
			BlobBaseFeeGwei: unit.GweiToString(snap.BlobBaseFeeWei),
			PerBlobEth:      unit.FormatEth(costmodel.BlobCost(snap.BlobBaseFeeWei, 1), 8),
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message.String(), nil
}
