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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmpbf"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pbf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "cpu: 3\nbatch_size: 8\nprogress: true\n"))
	require.NoError(t, err)

	assert.Equal(t, Config{
		CPU:        3,
		BatchSize:  8,
		BufferSize: osmpbf.DefaultBufferSize,
		Progress:   true,
	}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "cpu: [1, 2]\n"))
	assert.Error(t, err)
}

func TestConfigLoadFlagsWin(t *testing.T) {
	cfg := DefaultConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Uint16Var(&cfg.CPU, "cpu", cfg.CPU, "")
	flags.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "")
	require.NoError(t, flags.Parse([]string{"--cpu", "7"}))

	require.NoError(t, cfg.Load(writeConfig(t, "cpu: 2\nbatch_size: 4\nbuffer_size: 2048\n"), flags))

	assert.Equal(t, uint16(7), cfg.CPU)
	assert.Equal(t, 4, cfg.BatchSize)
	assert.Equal(t, 2048, cfg.BufferSize)
	assert.False(t, cfg.Progress)
}

func TestConfigLoadNoFile(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Load("", pflag.NewFlagSet("test", pflag.ContinueOnError)))
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Len(t, cfg.DecoderOptions(), 3)
}

func TestReaderValue(t *testing.T) {
	var name string

	v := NewReaderValue("-", &name, "file")
	assert.Equal(t, "-", v.String())
	assert.Equal(t, "file", v.Type())

	path := writeConfig(t, "")
	require.NoError(t, v.Set(path))
	assert.Equal(t, path, name)

	assert.Error(t, v.Set(filepath.Join(t.TempDir(), "missing.pbf")))
	assert.Equal(t, path, name)
}

func TestOpenInput(t *testing.T) {
	path := writeConfig(t, "data")

	for _, progress := range []bool{false, true} {
		rc, err := OpenInput(path, progress)
		require.NoError(t, err)

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "data", string(b))
		assert.NoError(t, rc.Close())
	}

	_, err := OpenInput(filepath.Join(t.TempDir(), "missing.pbf"), false)
	assert.Error(t, err)
}
