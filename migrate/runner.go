package migrate

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileResult records the migration outcome for one changed file.
type FileResult struct {
	Path      string
	Kind      TargetKind
	EditCount int
	// ByRule counts the applied edits per contributing rule.
	ByRule map[string]int
}

// Summary aggregates a migration run. Changed is sorted by path.
type Summary struct {
	Scanned int
	DryRun  bool
	Changed []FileResult
}

// Options configure a Runner.
type Options struct {
	// Workers bounds file-processing concurrency; zero or negative means
	// one worker. Edits never cross files, so concurrency does not
	// change outcomes.
	Workers int
	// DryRun computes and reports edits without writing any file.
	DryRun bool
	Logger *zap.Logger
}

// Runner applies a fixed rule set across a file tree.
type Runner struct {
	fs      afero.Fs
	rules   []Rule
	workers int
	dryRun  bool
	logger  *zap.Logger
}

// NewRunner builds a runner over the given filesystem and rules.
func NewRunner(fs afero.Fs, rules []Rule, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		fs:      fs,
		rules:   rules,
		workers: workers,
		dryRun:  opts.DryRun,
		logger:  logger.Named("migrate"),
	}
}

type candidate struct {
	path string
	kind TargetKind
	mode os.FileMode
}

// Run migrates every classifiable file under root. Files are processed
// concurrently; the first error cancels the remaining work. A conflict
// in any file fails the run with a ConflictError.
func (r *Runner) Run(ctx context.Context, root string) (*Summary, error) {
	var candidates []candidate
	err := afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		kind := ClassifyPath(path)
		if kind == KindOther {
			return nil
		}
		candidates = append(candidates, candidate{path: path, kind: kind, mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	summary := &Summary{Scanned: len(candidates), DryRun: r.dryRun}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, c := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := r.processFile(c)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}
			mu.Lock()
			summary.Changed = append(summary.Changed, *result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summary.Changed, func(i, j int) bool {
		return summary.Changed[i].Path < summary.Changed[j].Path
	})
	r.logger.Info("migration run finished",
		zap.Int("scanned", summary.Scanned),
		zap.Int("changed", len(summary.Changed)),
		zap.Bool("dry_run", summary.DryRun))
	return summary, nil
}

// processFile runs every rule against one file and applies the merged
// edits. A file no rule touches returns (nil, nil).
func (r *Runner) processFile(c candidate) (*FileResult, error) {
	raw, err := afero.ReadFile(r.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	target := &Target{Path: c.path, Kind: c.kind, Content: string(raw)}

	var edits []attributedEdit
	byRule := make(map[string]int)
	for _, rule := range r.rules {
		ruleEdits, err := rule.Edits(target)
		if err != nil {
			return nil, fmt.Errorf("rule %q on %s: %w", rule.Name(), c.path, err)
		}
		if len(ruleEdits) == 0 {
			continue
		}
		byRule[rule.Name()] += len(ruleEdits)
		for _, e := range ruleEdits {
			edits = append(edits, attributedEdit{Edit: e, rule: rule.Name()})
		}
	}
	if len(edits) == 0 {
		return nil, nil
	}

	rewritten, err := applyEdits(c.path, target.Content, edits)
	if err != nil {
		return nil, err
	}

	if !r.dryRun {
		if err := afero.WriteFile(r.fs, c.path, []byte(rewritten), c.mode); err != nil {
			return nil, fmt.Errorf("writing %s: %w", c.path, err)
		}
	}
	r.logger.Debug("migrated file",
		zap.String("path", c.path),
		zap.Stringer("kind", c.kind),
		zap.Int("edits", len(edits)))
	return &FileResult{Path: c.path, Kind: c.kind, EditCount: len(edits), ByRule: byRule}, nil
}
