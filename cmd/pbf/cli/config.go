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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"m4o.io/osmpbf"
)

// Config holds the tunables shared by every subcommand.
type Config struct {
	CPU        uint16 `yaml:"cpu"`
	BatchSize  int    `yaml:"batch_size"`
	BufferSize int    `yaml:"buffer_size"`
	Progress   bool   `yaml:"progress"`
}

// flagNames maps each configuration key to the flag that overrides it.
var flagNames = map[string]string{
	"cpu":         "cpu",
	"batch_size":  "batch-size",
	"buffer_size": "buffer-size",
	"progress":    "progress",
}

func DefaultConfig() Config {
	return Config{
		CPU:        osmpbf.DefaultNCpu(),
		BatchSize:  osmpbf.DefaultBatchSize,
		BufferSize: osmpbf.DefaultBufferSize,
	}
}

// LoadConfig reads a YAML configuration file.  Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Load merges the configuration file at path into c.  Settings given
// explicitly on the command line win over the file.  An empty path is a no-op.
func (c *Config) Load(path string, flags *pflag.FlagSet) error {
	if path == "" {
		return nil
	}

	file, err := LoadConfig(path)
	if err != nil {
		return err
	}

	changed := func(key string) bool {
		f := flags.Lookup(flagNames[key])

		return f != nil && f.Changed
	}

	if !changed("cpu") {
		c.CPU = file.CPU
	}

	if !changed("batch_size") {
		c.BatchSize = file.BatchSize
	}

	if !changed("buffer_size") {
		c.BufferSize = file.BufferSize
	}

	if !changed("progress") {
		c.Progress = file.Progress
	}

	return nil
}

// DecoderOptions converts the configuration into decoder options.
func (c Config) DecoderOptions() []osmpbf.DecoderOption {
	return []osmpbf.DecoderOption{
		osmpbf.WithNCpus(c.CPU),
		osmpbf.WithProtoBatchSize(c.BatchSize),
		osmpbf.WithProtoBufferSize(c.BufferSize),
	}
}
