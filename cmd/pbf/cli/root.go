// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli holds the root command of the pbf tool and the plumbing its
// subcommands share: configuration, logging and input handling.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Settings is the configuration in effect for the running command.
	Settings = DefaultConfig()

	configFile string
	verbose    bool
)

// RootCmd is the pbf command; subcommands register themselves with it.
var RootCmd = &cobra.Command{
	Use:           "pbf",
	Short:         "Inspect OpenStreetMap PBF files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return Settings.Load(configFile, cmd.Flags())
	},
}

// Execute runs the command selected by the command line arguments.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}

	return err
}

func init() {
	flags := RootCmd.PersistentFlags()

	flags.StringVar(&configFile, "config", "", "YAML configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.Uint16VarP(&Settings.CPU, "cpu", "c", Settings.CPU, "number of CPUs to use for decoding")
	flags.IntVar(&Settings.BatchSize, "batch-size", Settings.BatchSize, "number of blobs decoded together")
	flags.IntVar(&Settings.BufferSize, "buffer-size", Settings.BufferSize, "initial size of the blob buffer")
	flags.BoolVarP(&Settings.Progress, "progress", "p", Settings.Progress, "show a progress bar while reading a file")
}
