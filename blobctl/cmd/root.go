// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package cmd assembles the blobctl root command.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/cmd/audit"
	"github.com/zkforge/blobplan/blobctl/cmd/fee"
	"github.com/zkforge/blobplan/blobctl/cmd/monitor"
	"github.com/zkforge/blobplan/blobctl/cmd/plan"
	"github.com/zkforge/blobplan/blobctl/cmd/profile"
	"github.com/zkforge/blobplan/blobctl/cmd/version"
	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
)

// Multi-language support
var (
	_blobctlRootCmdShorts = map[config.Language]string{
		config.English: "Command-line interface for EIP-4844 blob packing and cost estimation",
		config.Chinese: "EIP-4844 blob打包与成本估算命令行工具",
	}
	_blobctlRootCmdLongs = map[config.Language]string{
		config.English: `blobctl packs zk-proof payloads into EIP-4844 blobs and compares what
publishing them costs via blobs, calldata and execution gas.`,
		config.Chinese: `blobctl 将zk证明负载打包进EIP-4844 blob，并比较通过blob、calldata
和执行gas发布它们的成本。`,
	}
	_flagOutputFormatUsages = map[config.Language]string{
		config.English: "output format: \"\" (plain) or json",
		config.Chinese: "输出格式：\"\"（纯文本）或json",
	}
)

// NewBlobctl returns the blobctl root cmd
func NewBlobctl() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blobctl",
		Short: config.TranslateInLang(_blobctlRootCmdShorts),
		Long:  config.TranslateInLang(_blobctlRootCmdLongs),
	}

	rootCmd.AddCommand(plan.PlanCmd)
	rootCmd.AddCommand(fee.FeeCmd)
	rootCmd.AddCommand(monitor.MonitorCmd)
	rootCmd.AddCommand(profile.ProfileCmd)
	rootCmd.AddCommand(audit.AuditCmd)
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.PersistentFlags().StringVarP(&output.Format, "output-format", "o", "",
		config.TranslateInLang(_flagOutputFormatUsages))

	return rootCmd
}
