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

package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/imgbatch/cmd/imgbatch/opts"
	"github.com/walteh/imgbatch/pkg/config"
	"github.com/walteh/imgbatch/pkg/discover"
	"github.com/walteh/imgbatch/pkg/imaging"
	"github.com/walteh/imgbatch/pkg/log"
	"github.com/walteh/imgbatch/pkg/operation"
	"github.com/walteh/imgbatch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrBatchFailed is returned when at least one (file, operation) pair failed
var ErrBatchFailed = errors.Base("batch had failures")

type runFlags struct {
	configFile  string
	recursive   bool
	backupDir   string
	exclude     []string
	jpegQuality int
}

// NewRunCmd creates the run command
func NewRunCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [SOURCE [OPERATION...]]",
		Short: "Apply operations to every image in a directory",
		Long: `Run discovers the .jpg and .png files in SOURCE and applies each
operation to each file, in the order given.

Operations:
  stretch=F   resize by factor F           (/s F)
  negate      invert the colors            (/n)
  remove      back up, then delete         (/r)
  copy=DIR    copy into DIR                (/c DIR)

Use /sub or --recursive to include subdirectories. Tokens override
the source and operations of --config; flags override both.`,
		Example: `  imgbatch run ./photos negate stretch=0.5 copy=./out
  imgbatch run ./photos /sub /n /s 2 /r
  imgbatch run --config batch.hcl`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := flags.load(ctx, cmd, rootOpts, args)
			if err != nil {
				return err
			}

			return runBatch(ctx, rootOpts, cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "config file path (.json, .yaml, .hcl or .imgbatch)")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "walk subdirectories")
	cmd.Flags().StringVar(&flags.backupDir, "backup-dir", "", "directory for backups taken before remove")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "glob of paths to skip, relative to SOURCE (repeatable)")
	cmd.Flags().IntVar(&flags.jpegQuality, "jpeg-quality", 0, "quality for re-encoded JPEG files, 1-100")

	return cmd
}

// load merges the config file, the positional tokens and the flags
func (f *runFlags) load(ctx context.Context, cmd *cobra.Command, rootOpts *opts.RootOpts, args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if f.configFile != "" {
		loaded, err := config.LoadConfigFs(ctx, rootOpts.Fs, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		fromArgs, err := config.ParseArgs(args)
		if err != nil {
			return nil, errors.Errorf("parsing arguments: %w", err)
		}
		cfg.Source = fromArgs.Source
		cfg.Recursive = cfg.Recursive || fromArgs.Recursive
		if len(fromArgs.Operations) > 0 {
			cfg.Operations = fromArgs.Operations
		}
	}

	if cmd.Flags().Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if cmd.Flags().Changed("backup-dir") {
		cfg.BackupDir = f.backupDir
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if cmd.Flags().Changed("jpeg-quality") {
		cfg.JPEGQuality = f.jpegQuality
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func runBatch(ctx context.Context, rootOpts *opts.RootOpts, cfg *config.Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", cfg.String()).Msg("starting run")

	console := log.New(rootOpts.Stdout, *logger)
	ctx = log.NewContext(ctx, console)

	ops, err := cfg.BuildOperations()
	if err != nil {
		return err
	}

	// An invalid root is the only failure that stops the batch
	if err := discover.ValidateRoot(rootOpts.Fs, cfg.Source); err != nil {
		console.Errorf("cannot process %s", cfg.Source)
		return err
	}

	console.Header("transforming images")
	if loc := cfg.Location(); loc != "" {
		console.Infof("using config %s", loc)
	}

	files, err := discover.Discover(ctx, rootOpts.Fs, cfg.Source, discover.Options{
		Recursive: cfg.Recursive,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		console.Warningf("no images found in %s", cfg.Source)
	}

	exec, err := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        rootOpts.Fs,
		Codec:     imaging.NewStdCodec(cfg.JPEGQuality),
		BackupDir: cfg.BackupDir,
	})
	if err != nil {
		return errors.Errorf("creating executor: %w", err)
	}

	tally := status.New(status.NewDefaultFormatter())

	runner, err := operation.NewRunner(operation.Options{
		Executor:  exec,
		Reporters: []operation.Reporter{console, tally},
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.String())
	}

	console.StartBatch(ctx, log.BatchInfo{
		Source:     cfg.Source,
		Recursive:  cfg.Recursive,
		Files:      len(files),
		Operations: names,
	})

	outcomes := runner.Run(ctx, files, ops)

	console.EndBatch(ctx)

	return summarize(ctx, tally, outcomes, len(files))
}

// summarize prints the tally through the console logger carried in ctx
func summarize(ctx context.Context, tally *status.Tally, outcomes []operation.Outcome, files int) error {
	console := log.FromContext(ctx)
	console.LogNewline()

	table, err := tally.Table()
	if err != nil {
		return err
	}
	console.Print(table)

	if failed := operation.Failed(outcomes); len(failed) > 0 {
		console.Errorf("%d of %d operations failed", len(failed), len(outcomes))
		return errors.Errorf("%w: %d of %d operations failed", ErrBatchFailed, len(failed), len(outcomes))
	}

	console.Successf("%d operations on %d files completed", len(outcomes), files)
	return nil
}
