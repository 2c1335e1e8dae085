package batch

import (
	"context"
	"time"

	"daysquare/internal/catalog"
	"daysquare/internal/parser"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of parsing one catalog entry
type Result struct {
	Name       string
	Line       string
	Descriptor *parser.EndpointDescriptor
	Error      error
	Duration   time.Duration
}

// Config holds configuration for batch parsing
type Config struct {
	MaxWorkers int
	Timeout    time.Duration
}

// Runner parses catalog entries concurrently
type Runner struct {
	config Config
	log    logrus.FieldLogger
}

// NewRunner creates a new batch runner
func NewRunner(config Config, log logrus.FieldLogger) *Runner {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 1
	}
	return &Runner{config: config, log: log}
}

// Run parses every entry with at most MaxWorkers goroutines. Results keep
// the order of entries. Parse failures are recorded per result; the
// returned error is only set when ctx ends (or the timeout passes) first.
func (r *Runner) Run(ctx context.Context, entries []catalog.Entry) ([]Result, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxWorkers)

	for i, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.parse(entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) parse(entry catalog.Entry) Result {
	start := time.Now()
	desc, err := parser.Parse(entry.Line)
	result := Result{
		Name:       entry.Name,
		Line:       entry.Line,
		Descriptor: desc,
		Error:      err,
		Duration:   time.Since(start),
	}

	log := r.log.WithField("entry", entry.Name)
	if err != nil {
		log.WithError(err).Warn("Rejected endpoint line")
	} else {
		log.Debug("Parsed endpoint line")
	}
	return result
}
