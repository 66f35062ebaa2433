// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zkforge/blobplan/blobctl/output"
	"github.com/zkforge/blobplan/pkg/unit"
)

var (
	_supportedLanguages = []string{"English", "中文"}
	_validSetArgs       = []string{"endpoint", "tip", "eth-price", "language"}
	_validGetArgs       = []string{"endpoint", "tip", "eth-price", "language", "all"}
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Get, set, or reset configuration for blobctl",
}

// _configGetCmd represents the config get command
var _configGetCmd = &cobra.Command{
	Use:       "get VARIABLE",
	Short:     "Get config fields from blobctl",
	Long:      "Get config fields from blobctl\nValid Variables: [" + strings.Join(_validGetArgs, ", ") + "]",
	ValidArgs: _validGetArgs,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("accepts 1 arg(s), received %d\n"+
				"Valid arg(s): %s", len(args), _validGetArgs)
		}
		return cobra.OnlyValidArgs(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return output.PrintError(get(args[0]))
	},
}

// _configSetCmd represents the config set command
var _configSetCmd = &cobra.Command{
	Use:       "set VARIABLE VALUE",
	Short:     "Set config fields for blobctl",
	Long:      "Set config fields for blobctl\nValid Variables: [" + strings.Join(_validSetArgs, ", ") + "]",
	ValidArgs: _validSetArgs,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("accepts 2 arg(s), received %d\n"+
				"Valid arg(s): %s", len(args), _validSetArgs)
		}
		return cobra.OnlyValidArgs(cmd, args[:1])
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return output.PrintError(set(args))
	},
}

// _configResetCmd represents the config reset command
var _configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset config to default",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return output.PrintError(reset())
	},
}

func init() {
	ConfigCmd.AddCommand(_configGetCmd)
	ConfigCmd.AddCommand(_configSetCmd)
	ConfigCmd.AddCommand(_configResetCmd)
}

func get(arg string) error {
	switch arg {
	case "endpoint":
		if ReadConfig.Endpoint == "" {
			return output.NewError(output.ConfigError, `use "blobctl config set endpoint" to config endpoint first`, nil)
		}
		output.PrintResult(ReadConfig.Endpoint)
	case "tip":
		output.PrintResult(ReadConfig.TipGwei + " gwei")
	case "eth-price":
		output.PrintResult(strconv.FormatFloat(ReadConfig.EthPriceUSD, 'f', -1, 64))
	case "language":
		output.PrintResult(ReadConfig.Language)
	case "all":
		output.PrintResult(output.JSONString(ReadConfig))
	}
	return nil
}

func set(args []string) error {
	switch args[0] {
	case "endpoint":
		ReadConfig.Endpoint = args[1]
	case "tip":
		if _, err := unit.StringToWei(args[1], unit.GweiDecimalNum); err != nil {
			return output.NewError(output.ValidationError, "invalid tip "+args[1], err)
		}
		ReadConfig.TipGwei = args[1]
	case "eth-price":
		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil || price < 0 {
			return output.NewError(output.ValidationError, "invalid ETH price "+args[1], err)
		}
		ReadConfig.EthPriceUSD = price
	case "language":
		language := ""
		for _, supported := range _supportedLanguages {
			if strings.EqualFold(args[1], supported) || args[1] == supported {
				language = supported
				break
			}
		}
		if language == "" {
			return output.NewError(output.ValidationError,
				"language "+args[1]+" is not supported\nSupported languages: "+
					strings.Join(_supportedLanguages, ", "), nil)
		}
		ReadConfig.Language = language
		UILanguage = languageOf(language)
	}
	if err := WriteConfig(); err != nil {
		return err
	}
	output.PrintResult(args[0] + " is set to " + args[1])
	return nil
}

func reset() error {
	ReadConfig = Config{TipGwei: "1.0", Language: "English"}
	UILanguage = English
	if err := WriteConfig(); err != nil {
		return err
	}
	output.PrintResult("successfully reset config")
	return nil
}
