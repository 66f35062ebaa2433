// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package audit implements the mined-transaction fee post-mortem command.
package audit

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/blobctl/util"
	"github.com/zkforge/blobplan/blobctl/validator"
	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/pkg/unit"
)

// Multi-language support
var _auditCmdShorts = map[config.Language]string{
	config.English: "Reconstruct what mined proof transactions paid",
	config.Chinese: "重构已上链证明交易的实际费用",
}

var (
	_endpoint      string
	_outlierFactor float64
	_timeout       time.Duration
)

// AuditCmd represents the audit command
var AuditCmd = &cobra.Command{
	Use:   "audit TX_HASH [TX_HASH...]",
	Short: config.TranslateInLang(_auditCmdShorts),
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message, err := audit(args)
		if err != nil {
			return output.PrintError(err)
		}
		cmd.Println(message)
		return nil
	},
}

func init() {
	AuditCmd.Flags().StringVarP(&_endpoint, "endpoint", "e", "", "RPC endpoint")
	AuditCmd.Flags().Float64Var(&_outlierFactor, "outlier-factor", 3.0, "flag tips above this multiple of the batch median")
	AuditCmd.Flags().DurationVar(&_timeout, "timeout", 60*time.Second, "RPC timeout for the whole batch")
}

type auditMessage struct {
	Audits  []*chainfee.TxAudit `json:"audits"`
	Flagged []int               `json:"flagged,omitempty"`
}

func (m *auditMessage) String() string {
	if output.Format == "" {
		var buf bytes.Buffer
		tb := table.New("Hash", "Block", "OK", "Gas Used", "Tip (gwei)", "Exec (ETH)", "Blob (ETH)", "Overpaid")
		tb.WithWriter(&buf)
		for _, a := range m.Audits {
			tip, execCost, blobCost := "-", "-", "-"
			if a.TipWei != nil {
				tip = unit.GweiToString(a.TipWei)
			}
			if a.ExecutionCostWei != nil {
				execCost = unit.FormatEth(a.ExecutionCostWei, 8)
			}
			if a.BlobCostWei != nil {
				blobCost = unit.FormatEth(a.BlobCostWei, 8)
			}
			tb.AddRow(shorten(a.Hash.Hex()), a.BlockNumber, a.Success, a.GasUsed,
				tip, execCost, blobCost, a.Overpaid)
		}
		tb.Print()
		if len(m.Flagged) > 0 {
			fmt.Fprintf(&buf, "%d transaction(s) paid more than %.1fx the median tip\n",
				len(m.Flagged), _outlierFactor)
		}
		return buf.String()
	}
	return output.FormatString(output.Result, m)
}

func shorten(hex string) string {
	if len(hex) > 14 {
		return hex[:10] + ".." + hex[len(hex)-4:]
	}
	return hex
}

func audit(args []string) (string, error) {
	hashes := make([]common.Hash, 0, len(args))
	for _, arg := range args {
		if len(common.FromHex(arg)) != common.HashLength {
			return "", output.NewError(output.ValidationError, "invalid transaction hash "+arg, nil)
		}
		hashes = append(hashes, common.HexToHash(arg))
	}

	endpoint := util.Endpoint(_endpoint)
	if err := validator.ValidateEndpoint(endpoint); err != nil {
		return "", output.NewError(output.ConfigError, "", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), _timeout)
	defer cancel()
	client, err := chainfee.Dial(ctx, endpoint)
	if err != nil {
		return "", output.NewError(output.NetworkError, "failed to connect to endpoint", err)
	}
	defer client.Close()

	audits, err := chainfee.NewAuditor(client).Audit(ctx, hashes)
	if err != nil {
		return "", output.NewError(output.NetworkError, "failed to audit transactions", err)
	}
	flagged := chainfee.FlagOutliers(audits, _outlierFactor)
	return (&auditMessage{Audits: audits, Flagged: flagged}).String(), nil
}
