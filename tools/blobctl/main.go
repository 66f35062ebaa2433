// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Usage:
//   blobctl plan --sizes 64000,90000 --gas-used 1200000 -e https://rpc.example.org
//   blobctl fee snapshot -e https://rpc.example.org
//   BLOBPLAN_CONFIG=blobplan.yaml blobctl monitor
package main

import (
	"fmt"
	"os"

	"github.com/zkforge/blobplan/blobctl/cmd"
	"github.com/zkforge/blobplan/config"
	"github.com/zkforge/blobplan/pkg/log"
)

func main() {
	cfg, err := config.New([]string{os.Getenv("BLOBPLAN_CONFIG")})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if err := log.InitLoggers(cfg.Log, nil); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	rootCmd := cmd.NewBlobctl()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
