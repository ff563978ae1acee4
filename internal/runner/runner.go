package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bblfsh/uastclient/internal/config"
	"github.com/bblfsh/uastclient/internal/exit"
	"github.com/bblfsh/uastclient/internal/formatter"
	"github.com/bblfsh/uastclient/internal/formatter/stdout"
	"github.com/bblfsh/uastclient/internal/results"
	"github.com/bblfsh/uastclient/uast"
	"github.com/bblfsh/uastclient/value"
)

// Runner queries or walks every input file of a configuration.
type Runner struct {
	config    *config.Config
	formatter formatter.Formatter
	logger    *slog.Logger
	errOutput io.Writer
}

// New creates a Runner printing to stdout. Debug mode routes library logs to
// stderr.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	if cfg == nil {
		return nil, exit.Error("Error creating runner: nil config\n")
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	uast.SetLogger(logger)

	return &Runner{
		config:    cfg,
		formatter: stdout.New(cfg.Output, cfg.Array),
		logger:    logger,
		errOutput: os.Stderr,
	}, nil
}

func (r *Runner) SetFormatter(f formatter.Formatter) {
	r.formatter = f
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

// Run processes the files and prints the results. It returns the process exit
// code.
func (r *Runner) Run(ctx context.Context) int {
	s, err := r.ProcessFiles(ctx, r.config.Files)
	if ferr := r.formatter.Format(s); ferr != nil {
		fmt.Fprintf(r.errorWriter(), "Error formatting results: %v\n", ferr)
		return exit.CodeError
	}
	if err != nil {
		fmt.Fprintf(r.errorWriter(), "\nInterrupted after %d of %d files: %v\n",
			s.ProcessedFiles, len(r.config.Files), err)
		return exit.CodeError
	}
	if s.Failed() {
		return exit.CodeError
	}
	return exit.CodeOK
}

// ProcessFiles handles each file in turn. Per-file failures are recorded in
// the summary; the error is only set when ctx ends the run early.
func (r *Runner) ProcessFiles(ctx context.Context, files []string) (*results.Summary, error) {
	s := results.NewSummary(len(files))
	overallStart := time.Now()

	for _, filename := range files {
		if err := ctx.Err(); err != nil {
			s.SetTotalDuration(time.Since(overallStart))
			return s, err
		}

		start := time.Now()
		b := results.NewFileResultBuilder(filename)
		err := r.processFile(ctx, filename, b)
		if err != nil {
			r.logger.Debug("file failed", "filename", filename, "error", err)
		}
		s.Add(b.WithDuration(time.Since(start)).WithError(err))
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s, nil
}

func (r *Runner) processFile(ctx context.Context, filename string, b *results.FileResultBuilder) error {
	format, err := r.config.InputFormat(filename)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	rc, err := uast.Decode(data, format)
	if err != nil {
		return fmt.Errorf("failed to decode %s as %s: %w", filename, format, err)
	}

	it, err := r.iterator(rc)
	if err != nil {
		return err
	}
	for item := range it.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.AddItem(r.render(item))
		if r.config.Limit > 0 && b.ItemCount() >= r.config.Limit {
			break
		}
	}
	return it.Err()
}

func (r *Runner) iterator(rc *uast.ResultContext) (*uast.Iterator, error) {
	if r.config.Query != "" {
		return rc.Filter(r.config.Query)
	}
	return rc.Iterate(r.config.Order)
}

func (r *Runner) render(item uast.Item) value.Value {
	v := item.Get()
	if r.config.Types && item.IsNode() {
		return value.String(value.TypeOf(v))
	}
	return v
}
