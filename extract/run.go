package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"atomcss/common"
	"atomcss/state"
	"atomcss/store"
	"atomcss/styles"
)

// Run is the action of extract command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	dir, err := filepath.Abs(cmd.String("dir"))
	if err != nil {
		return err
	}
	patterns := cmd.Args().Slice()

	format := env.Cfg.Extract.Format
	if cmd.IsSet("to") {
		if format, err = common.ParseOutputFormat(cmd.String("to")); err != nil {
			return fmt.Errorf("unknown output format requested: %w", err)
		}
	}
	direction := env.Cfg.Renderer.Direction
	if cmd.IsSet("direction") {
		if direction, err = common.ParseDirection(cmd.String("direction")); err != nil {
			return fmt.Errorf("unknown direction requested: %w", err)
		}
	}
	storePath := env.Cfg.Extract.Store
	if cmd.IsSet("store") {
		storePath = cmd.String("store")
	}
	env.Overwrite = cmd.Bool("overwrite") || cmd.Bool("watch")

	opts := Options{
		Dir:       dir,
		Patterns:  patterns,
		Direction: direction,
		Workers:   env.Cfg.Extract.Workers(),
		Renderer:  append(env.Cfg.Renderer.Options(), styles.WithObserver(env.Metrics)),
	}
	if len(storePath) > 0 {
		if opts.Store, err = store.Open(storePath, log); err != nil {
			return err
		}
		defer func() {
			if er := opts.Store.Close(); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close store: %w", er))
			}
		}()
	}

	out, classes := cmd.String("out"), cmd.String("classes")
	log.Info("Extraction starting", zap.String("dir", dir), zap.Strings("patterns", patterns), zap.Stringer("format", format), zap.Stringer("direction", direction))

	once := func() error {
		defer func(start time.Time) {
			log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)))
		}(time.Now())
		return process(ctx, env, opts, format, out, classes, log)
	}

	if !cmd.Bool("watch") {
		return once()
	}
	if err := once(); err != nil {
		log.Error("Extraction failed", zap.Error(err))
	}
	log.Info("Watching for changes, interrupt to stop", zap.String("dir", dir))
	return Watch(ctx, dir, patterns, log, once)
}

// process runs single extraction and writes its results.
func process(ctx context.Context, env *state.LocalEnv, opts Options, format common.OutputFormat, out, classes string, log *zap.Logger) error {
	res, errs := Extract(ctx, opts, log)
	if res == nil {
		return errs
	}
	for _, e := range multierr.Errors(errs) {
		log.Warn("Declaration skipped", zap.Error(e))
	}

	data, err := res.Encode(format)
	if err != nil {
		return err
	}
	if err := WriteOutput(os.Stdout, out, data, env.Overwrite); err != nil {
		return err
	}
	env.Rpt.StoreData("output"+format.Ext(), data)

	if len(classes) > 0 {
		data, err := EncodeClasses(res.Classes)
		if err != nil {
			return err
		}
		if err := WriteOutput(os.Stdout, classes, data, env.Overwrite); err != nil {
			return err
		}
		env.Rpt.StoreData("classes.yaml", data)
	}
	env.LogMetrics()

	log.Info("Styles extracted", zap.Int("files", len(res.Files)), zap.Int("rules", len(res.Renderer.Registry().Serialize())), zap.Int("skipped", len(multierr.Errors(errs))))
	if errs != nil {
		return fmt.Errorf("%d declaration(s) could not be resolved", len(multierr.Errors(errs)))
	}
	return nil
}
