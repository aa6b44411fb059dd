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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/imgbatch/pkg/imaging"
	"github.com/walteh/imgbatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🔧 OperationSpec is one operation as written in a config file
type OperationSpec struct {
	Kind   string   `json:"kind" yaml:"kind" hcl:"kind,label"`
	Factor *float64 `json:"factor,omitempty" yaml:"factor,omitempty" hcl:"factor,optional"` // stretch only
	Target *string  `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"` // copy only
}

// 📚 Config represents the complete configuration of a batch
type Config struct {
	Source      string          `json:"source" yaml:"source" hcl:"source,optional"`
	Recursive   bool            `json:"recursive,omitempty" yaml:"recursive,omitempty" hcl:"recursive,optional"`
	BackupDir   string          `json:"backup_dir,omitempty" yaml:"backup_dir,omitempty" hcl:"backup_dir,optional"`
	JPEGQuality int             `json:"jpeg_quality,omitempty" yaml:"jpeg_quality,omitempty" hcl:"jpeg_quality,optional"`
	Exclude     []string        `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Operations  []OperationSpec `json:"operations" yaml:"operations" hcl:"operation,block"`

	location string
}

// DefaultBackupDir is where Remove backups go when no directory is configured
func DefaultBackupDir() string {
	return filepath.Join(xdg.StateHome, "imgbatch", "backups")
}

// 🏭 Build turns the spec into an operation
func (s OperationSpec) Build() (operation.Operation, error) {
	kind := operation.Kind(strings.ToLower(strings.TrimSpace(s.Kind)))

	if kind != operation.KindStretch && s.Factor != nil {
		return nil, errors.Errorf("%s does not take a factor", kind)
	}
	if kind != operation.KindCopy && s.Target != nil {
		return nil, errors.Errorf("%s does not take a target", kind)
	}

	switch kind {
	case operation.KindStretch:
		if s.Factor == nil {
			return nil, errors.Errorf("stretch requires a factor")
		}
		op, err := operation.NewStretch(*s.Factor)
		if err != nil {
			return nil, err
		}
		return op, nil
	case operation.KindCopy:
		if s.Target == nil {
			return nil, errors.Errorf("copy requires a target")
		}
		op, err := operation.NewCopy(*s.Target)
		if err != nil {
			return nil, err
		}
		return op, nil
	default:
		return operation.Parse(string(kind), "")
	}
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	// Check required fields
	if strings.TrimSpace(cfg.Source) == "" {
		return errors.Errorf("source is required")
	}
	if len(cfg.Operations) == 0 {
		return errors.Errorf("at least one operation is required")
	}

	for i, spec := range cfg.Operations {
		if _, err := spec.Build(); err != nil {
			return errors.Errorf("operation %d: %w", i+1, err)
		}
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	// Set defaults
	if cfg.JPEGQuality == 0 {
		cfg.JPEGQuality = imaging.DefaultJPEGQuality
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return errors.Errorf("jpeg_quality must be between 1 and 100, got %d", cfg.JPEGQuality)
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = DefaultBackupDir()
	}

	// Clean up paths
	cfg.Source = filepath.Clean(cfg.Source)
	cfg.BackupDir = filepath.Clean(cfg.BackupDir)

	return nil
}

// 📋 BuildOperations returns the configured operations in order
func (cfg *Config) BuildOperations() ([]operation.Operation, error) {
	ops := make([]operation.Operation, 0, len(cfg.Operations))
	for i, spec := range cfg.Operations {
		op, err := spec.Build()
		if err != nil {
			return nil, errors.Errorf("operation %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Operations))
	for _, spec := range cfg.Operations {
		if op, err := spec.Build(); err == nil {
			names = append(names, op.String())
		} else {
			names = append(names, spec.Kind+"(?)")
		}
	}
	mode := "flat"
	if cfg.Recursive {
		mode = "recursive"
	}
	return fmt.Sprintf("%s [%s]: %s", cfg.Source, mode, strings.Join(names, " → "))
}

// resolve makes relative paths absolute against dir
func (cfg *Config) resolve(dir string) {
	abs := func(p string) string {
		if strings.TrimSpace(p) == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	cfg.Source = abs(cfg.Source)
	cfg.BackupDir = abs(cfg.BackupDir)
	for i := range cfg.Operations {
		if t := cfg.Operations[i].Target; t != nil {
			resolved := abs(*t)
			cfg.Operations[i].Target = &resolved
		}
	}
}
