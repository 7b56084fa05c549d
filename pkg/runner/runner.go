package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/fsutil"
	"github.com/yaklabco/seevg/pkg/langdetect"
	"github.com/yaklabco/seevg/pkg/mdsvg"
)

// Runner formats files with one Formatter.
type Runner struct {
	Formatter *format.Formatter
}

// New creates a Runner.
func New(formatter *format.Formatter) *Runner {
	if formatter == nil {
		formatter = format.New(format.DefaultOptions())
	}
	return &Runner{Formatter: formatter}
}

// Run discovers files under opts.Paths and formats them on a worker pool.
// Outcomes come back in discovery order regardless of completion order.
// A cancelled ctx stops feeding work and returns the partial result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.WorkingDir, err = resolveWorkDir(opts.WorkingDir); err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("formatting files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldWrite, opts.Write,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		outcome.Result, outcome.Error = r.ProcessFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile formats one file and, with opts.Write, commits the result.
// A file changed on disk during formatting is skipped, not overwritten.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	res := &FileResult{
		Kind:     langdetect.DetectFile(path, content),
		Original: string(content),
	}
	res.Formatted = res.Original

	switch {
	case res.Kind == langdetect.KindSVG:
		res.Formatted = r.FormatSVG(res.Original)
	case res.Kind == langdetect.KindMarkdown && opts.markdown():
		md, err := mdsvg.Format(res.Original, r.Formatter)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", path, err)
		}
		res.Formatted = md.Text
		res.Blocks = len(md.Blocks)
	default:
		res.Skipped = true
		res.Reason = "unsupported file type"
		return res, nil
	}

	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	if !res.Changed() {
		logger.Debug("already formatted")
		return res, nil
	}

	res.Diff, err = fix.GenerateDiff(displayPath(path, opts.WorkingDir), res.Original, res.Formatted)
	if err != nil {
		return nil, err
	}

	if !opts.Write {
		logger.Debug("needs formatting", logging.FieldBlocks, res.Blocks)
		return res, nil
	}

	err = fsutil.Commit(ctx, info, []byte(res.Formatted), opts.backup())
	if errors.Is(err, fsutil.ErrModified) {
		logger.Warn("file modified during formatting, skipping")
		res.Skipped = true
		res.Reason = "modified during formatting"
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	res.Written = true
	logger.Debug("formatted", logging.FieldChanged, true)
	return res, nil
}

// FormatSVG formats a standalone SVG document, keeping one trailing
// newline when the input had one.
func (r *Runner) FormatSVG(text string) string {
	formatted := r.Formatter.Format(text)
	if strings.HasSuffix(text, "\n") && formatted != "" {
		formatted += "\n"
	}
	return formatted
}

func displayPath(path, workDir string) string {
	if workDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
