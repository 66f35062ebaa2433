// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package config persists the CLI's own settings (endpoint, default tip,
// language) under the user's config directory, separate from the tool
// configuration loaded per run.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/zkforge/blobplan/blobctl/output"
)

// Language type used to enumerate supported language of blobctl
type Language int

// Multi-language support
const (
	// English language
	English Language = iota
	// Chinese language
	Chinese
)

// Directory and file names for the persisted CLI config
const (
	_configDirName  = "blobctl"
	_configFileName = "config.default"
)

// Config defines the persisted config schema
type Config struct {
	Endpoint    string  `yaml:"endpoint"`
	TipGwei     string  `yaml:"tipGwei"`
	EthPriceUSD float64 `yaml:"ethPriceUSD"`
	Language    string  `yaml:"language"`
}

var (
	// ConfigDir is the directory to store config file
	ConfigDir string
	// DefaultConfigFile is the default config file name
	DefaultConfigFile string
	// ReadConfig represents the current config read from local
	ReadConfig Config
	// UILanguage represents the language used to display
	UILanguage Language
)

func init() {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	ConfigDir = filepath.Join(base, _configDirName)
	DefaultConfigFile = filepath.Join(ConfigDir, _configFileName)
	if cfg, err := LoadConfig(); err == nil {
		ReadConfig = cfg
	}
	if ReadConfig.TipGwei == "" {
		ReadConfig.TipGwei = "1.0"
	}
	UILanguage = languageOf(ReadConfig.Language)
}

func languageOf(name string) Language {
	switch name {
	case "中文", "Chinese":
		return Chinese
	default:
		return English
	}
}

// LoadConfig loads the persisted config file.
func LoadConfig() (Config, error) {
	var cfg Config
	in, err := os.ReadFile(DefaultConfigFile)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(in, &cfg)
	return cfg, err
}

// WriteConfig persists the current config to the default config file.
func WriteConfig() error {
	out, err := yaml.Marshal(&ReadConfig)
	if err != nil {
		return output.NewError(output.SerializationError, "failed to marshal config", err)
	}
	if err := os.MkdirAll(ConfigDir, 0700); err != nil {
		return output.NewError(output.WriteFileError, "failed to create config directory "+ConfigDir, err)
	}
	if err := os.WriteFile(DefaultConfigFile, out, 0600); err != nil {
		return output.NewError(output.WriteFileError, "failed to write to config file "+DefaultConfigFile, err)
	}
	return nil
}

// TranslateInLang returns the translation of the given message in the UI
// language, falling back to English when the translation is missing.
func TranslateInLang(translations map[Language]string) string {
	if msg, ok := translations[UILanguage]; ok {
		return msg
	}
	return translations[English]
}
