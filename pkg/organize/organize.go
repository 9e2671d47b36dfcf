// Package organize drives one sorting run: walk the export, classify each
// file, and place it in its destination bucket.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"takeoutsort/pkg/datefind"
	"takeoutsort/pkg/place"
	"takeoutsort/pkg/route"
	"takeoutsort/pkg/scan"
)

// Config drives one organizing run.
type Config struct {
	InputRoot  string
	OutputRoot string

	// Limit caps the number of files processed (0 = unlimited).
	Limit int

	// Workers bounds concurrent placements; values below 2 run serially.
	Workers int

	// Now anchors the validity window; the zero value means time.Now().
	Now time.Time

	Log zerolog.Logger
}

// Summary reports what a run did.
type Summary struct {
	Processed int
	Copied    int
	Converted int
	Skipped   int
	Failed    int
}

// Run walks the input root and routes every qualifying media file into its
// destination bucket. Per-file failures are logged and counted, never fatal;
// only an unusable input root aborts the run before any processing.
func Run(cfg Config) (Summary, error) {
	info, err := os.Stat(cfg.InputRoot)
	if err != nil || !info.IsDir() {
		return Summary{}, fmt.Errorf("input root %s is not a readable directory", cfg.InputRoot)
	}
	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output root: %w", err)
	}

	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	window := datefind.CurrentWindow(now)

	r := &runner{
		cfg:      cfg,
		window:   window,
		resolver: datefind.NewResolver(window, cfg.Log),
	}

	opts := scan.DefaultOptions()
	opts.Limit = cfg.Limit

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	walkErr := scan.Walk(cfg.InputRoot, opts, func(path string) error {
		g.Go(func() error {
			r.process(path)
			return nil
		})
		return nil
	})
	_ = g.Wait()
	if walkErr != nil {
		return r.summary, fmt.Errorf("walk %s: %w", cfg.InputRoot, walkErr)
	}
	return r.summary, nil
}

type runner struct {
	cfg      Config
	window   datefind.Window
	resolver *datefind.Resolver

	mu      sync.Mutex
	summary Summary
}

func (r *runner) process(path string) {
	item := datefind.NewItem(path)
	decision := route.Classify(item, r.cfg.OutputRoot, r.window, r.resolver)

	// MkdirAll is idempotent, so racing workers on the same bucket are fine.
	if err := os.MkdirAll(filepath.Dir(decision.DestPath), 0o755); err != nil {
		r.cfg.Log.Warn().Err(err).Str("path", path).Msg("create bucket directory")
		r.record(func(s *Summary) { s.Failed++ })
		return
	}

	res, err := place.Place(path, decision.DestPath)
	if err != nil {
		r.cfg.Log.Warn().Err(err).Str("path", path).Msg("placement failed")
		r.record(func(s *Summary) { s.Failed++ })
		return
	}

	r.cfg.Log.Info().
		Str("bucket", decision.Bucket).
		Str("source", path).
		Str("dest", res.DestPath).
		Str("status", string(res.Status)).
		Msg("placed")

	r.record(func(s *Summary) {
		switch res.Status {
		case place.StatusCopied:
			s.Copied++
		case place.StatusConverted:
			s.Converted++
		case place.StatusSkippedExisting:
			s.Skipped++
		}
	})
}

func (r *runner) record(update func(*Summary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Processed++
	update(&r.summary)
}
