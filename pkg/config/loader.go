// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .imgbatch will try both YAML and HCL formats
//
// Relative paths in the file are resolved against the file's directory.
// The result is not validated; callers apply overrides and then call Validate.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	return LoadConfigFs(ctx, afero.NewOsFs(), path)
}

// LoadConfigFs is LoadConfig reading from fs
func LoadConfigFs(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if strings.ToLower(filepath.Ext(path)) == ".imgbatch" {
		// Try YAML first, then HCL
		cfg, err = (&YAMLParser{}).Parse(ctx, data, path)
		if err != nil {
			logger.Debug().Err(err).Msg("config is not YAML, trying HCL")
			cfg, err = (&HCLParser{}).Parse(ctx, data, path)
			if err != nil {
				return nil, errors.Errorf("parsing %s as YAML or HCL: %w", filepath.Base(path), err)
			}
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
		}
		cfg, err = p.Parse(ctx, data, path)
		if err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.location = abs
	cfg.resolve(filepath.Dir(abs))

	return cfg, nil
}
