// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package version

import (
	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/config"
	"github.com/zkforge/blobplan/blobctl/output"
	ver "github.com/zkforge/blobplan/pkg/version"
)

// Multi-language support
var _versionCmdShorts = map[config.Language]string{
	config.English: "Print the version of blobctl",
	config.Chinese: "打印blobctl版本",
}

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: config.TranslateInLang(_versionCmdShorts),
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		message := versionMessage(ver.String())
		cmd.Println(message.String())
		return nil
	},
}

type versionMessage string

func (m versionMessage) String() string {
	if output.Format == "" {
		return string(m)
	}
	return output.FormatString(output.Result, output.StringMessage(m))
}
