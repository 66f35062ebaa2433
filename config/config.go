// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package config loads the tool configuration: defaults first, then any YAML
// files, with ${ENV} expansion inside the files. Validation runs after the
// merge so a bad file never yields a half-usable config.
package config

import (
	"os"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/zkforge/blobplan/chainfee"
	"github.com/zkforge/blobplan/pkg/log"
)

// ErrInvalidCfg indicates an invalid config parameter
var ErrInvalidCfg = errors.New("invalid config")

type (
	// Chain names one chain the tool can talk to.
	Chain struct {
		ChainID uint64 `yaml:"chainID"`
		Name    string `yaml:"name"`
		RPCURL  string `yaml:"rpcURL"`
	}

	// Fees holds the fee defaults a run starts from. Gwei amounts are decimal
	// strings so they survive the YAML round trip without float loss.
	Fees struct {
		TipGwei         string  `yaml:"tipGwei"`
		BlobBaseFeeGwei string  `yaml:"blobBaseFeeGwei"`
		EthPriceUSD     float64 `yaml:"ethPriceUSD"`
	}

	// Monitor holds the multi-endpoint health thresholds.
	Monitor struct {
		HighRatio float64             `yaml:"highRatio"`
		LowRatio  float64             `yaml:"lowRatio"`
		Endpoints []chainfee.Endpoint `yaml:"endpoints"`
	}

	// Profile holds the block-scan defaults.
	Profile struct {
		Blocks       uint64 `yaml:"blocks"`
		Step         uint64 `yaml:"step"`
		FeeCacheSize int    `yaml:"feeCacheSize"`
	}

	// Config is the root configuration.
	Config struct {
		RPCURL  string           `yaml:"rpcURL"`
		Fees    Fees             `yaml:"fees"`
		Monitor Monitor          `yaml:"monitor"`
		Profile Profile          `yaml:"profile"`
		Chains  []Chain          `yaml:"chains"`
		Log     log.GlobalConfig `yaml:"log"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// Default is the default config
var Default = Config{
	Fees: Fees{
		TipGwei:     "1.0",
		EthPriceUSD: 0,
	},
	Monitor: Monitor{
		HighRatio: 2.0,
		LowRatio:  0.9,
	},
	Profile: Profile{
		Blocks:       300,
		Step:         3,
		FeeCacheSize: 1024,
	},
}

// Validates is the collection of default validations
var Validates = []Validate{
	ValidateFees,
	ValidateMonitor,
	ValidateProfile,
}

// New creates a config instance. It first loads the defaults, then overrides
// them with each config path in order. By default all validation functions
// run; pass explicit validates to narrow that down.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	if cfg.RPCURL == "" {
		cfg.RPCURL = os.Getenv("RPC_URL")
	}

	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}

	// teach the network registry about configured chains
	for _, chain := range cfg.Chains {
		if chain.ChainID != 0 && chain.Name != "" {
			chainfee.RegisterNetwork(chain.ChainID, chain.Name)
		}
	}
	return cfg, nil
}

// DoNotValidate validates nothing
func DoNotValidate(Config) error { return nil }

// ValidateFees validates the fee defaults
func ValidateFees(cfg Config) error {
	if cfg.Fees.TipGwei == "" {
		return errors.Wrap(ErrInvalidCfg, "default tip must not be empty")
	}
	if cfg.Fees.EthPriceUSD < 0 {
		return errors.Wrap(ErrInvalidCfg, "ETH price should not be less than 0")
	}
	return nil
}

// ValidateMonitor validates the monitor thresholds
func ValidateMonitor(cfg Config) error {
	mc := chainfee.MonitorConfig{HighRatio: cfg.Monitor.HighRatio, LowRatio: cfg.Monitor.LowRatio}
	if err := mc.Validate(); err != nil {
		return errors.Wrap(ErrInvalidCfg, err.Error())
	}
	return nil
}

// ValidateProfile validates the block-scan defaults
func ValidateProfile(cfg Config) error {
	if cfg.Profile.Blocks == 0 {
		return errors.Wrap(ErrInvalidCfg, "profile block count should be greater than 0")
	}
	if cfg.Profile.FeeCacheSize <= 0 {
		return errors.Wrap(ErrInvalidCfg, "fee cache size should be greater than 0")
	}
	return nil
}

// MonitorConfig converts the monitor section to the chainfee thresholds.
func (cfg Config) MonitorConfig() chainfee.MonitorConfig {
	return chainfee.MonitorConfig{
		HighRatio: cfg.Monitor.HighRatio,
		LowRatio:  cfg.Monitor.LowRatio,
	}
}
