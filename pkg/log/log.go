// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package log provides the global loggers. Callers grab the zap logger via
// L() (or the sugared S()) instead of wiring a logger through every
// constructor; InitLoggers reconfigures them once at process start.
package log

import (
	stdlog "log"
	"os"
	"sync"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GlobalConfig defines the global logger configurations.
type GlobalConfig struct {
	Zap            *zap.Config `json:"zap" yaml:"zap"`
	StdLogRedirect bool        `json:"stdLogRedirect" yaml:"stdLogRedirect"`
	EcsIntegration bool        `json:"ecsIntegration" yaml:"ecsIntegration"`
}

var (
	_globalCfg    GlobalConfig
	_logMu        sync.RWMutex
	_globalLogger *zap.Logger
	_subLoggers   map[string]*zap.Logger
)

func init() {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapCfg.Level.SetLevel(zap.InfoLevel)
	l, err := zapCfg.Build()
	if err != nil {
		stdlog.Panic("failed to initialize the default logger: ", err)
	}
	_globalLogger = l
	_subLoggers = make(map[string]*zap.Logger)
}

// L wraps the global logger.
func L() *zap.Logger {
	_logMu.RLock()
	l := _globalLogger
	_logMu.RUnlock()
	return l
}

// S wraps the sugared global logger.
func S() *zap.SugaredLogger { return L().Sugar() }

// Logger returns the sub logger of the given name, falling back to the
// global logger when the name was never configured.
func Logger(name string) *zap.Logger {
	_logMu.RLock()
	defer _logMu.RUnlock()
	if l, ok := _subLoggers[name]; ok {
		return l
	}
	return _globalLogger
}

// InitLoggers initializes the global logger and the sub loggers.
func InitLoggers(globalCfg GlobalConfig, subCfgs map[string]GlobalConfig) error {
	globalLogger, err := newLogger(globalCfg)
	if err != nil {
		return err
	}
	subLoggers := make(map[string]*zap.Logger, len(subCfgs))
	for name, cfg := range subCfgs {
		l, err := newLogger(cfg)
		if err != nil {
			return err
		}
		subLoggers[name] = l.With(zap.String("subLogger", name))
	}

	_logMu.Lock()
	_globalCfg = globalCfg
	_globalLogger = globalLogger
	_subLoggers = subLoggers
	if globalCfg.StdLogRedirect {
		zap.RedirectStdLog(globalLogger)
	}
	_logMu.Unlock()
	return nil
}

func newLogger(cfg GlobalConfig) (*zap.Logger, error) {
	if cfg.EcsIntegration {
		core := ecszap.NewCore(ecszap.NewDefaultEncoderConfig(), os.Stdout, zap.InfoLevel)
		return zap.New(core, zap.AddCaller()), nil
	}
	zapCfg := cfg.Zap
	if zapCfg == nil {
		c := zap.NewProductionConfig()
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg = &c
	}
	return zapCfg.Build()
}
